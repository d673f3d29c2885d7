package adapter

import (
	"context"
	"time"
)

// IdentityClaims is the identity extracted from a verified bearer token.
type IdentityClaims struct {
	OwnerID   string
	Email     string
	ExpiresAt time.Time
}

// TokenVerifier validates bearer tokens issued by the identity provider.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*IdentityClaims, error)
}
