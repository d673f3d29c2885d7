package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// IdentityClaims represents the claims of a bearer token issued by the identity provider.
type IdentityClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// jwtVerifier implements the adapter.TokenVerifier interface for HMAC signed tokens.
type jwtVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier creates a verifier for tokens signed with secret. When issuer
// is not empty the iss claim must match it.
func NewJWTVerifier(secret, issuer string) adapter.TokenVerifier {
	return &jwtVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// VerifyToken validates the signature and expiry of token and returns the owner in its sub claim.
func (v *jwtVerifier) VerifyToken(_ context.Context, tokenString string) (*adapter.IdentityClaims, error) {
	if len(v.secret) == 0 {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "token verification is not configured", domainerror.ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "token has expired", domainerror.ErrExpiredToken)
		}
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token", errors.Join(domainerror.ErrInvalidToken, err))
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token claims", domainerror.ErrInvalidToken)
	}

	identity := &adapter.IdentityClaims{
		OwnerID: claims.Subject,
		Email:   claims.Email,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// SignIdentityToken issues an HS256 token for ownerID. It is used by local
// tooling and tests standing in for the identity provider.
func SignIdentityToken(secret, issuer, ownerID, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := IdentityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
