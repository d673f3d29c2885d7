package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newIdentityEngine(trustHeader bool) *gin.Engine {
	engine := gin.New()
	identity := NewIdentityMiddleware(adapters.NewJWTVerifier(testSecret, ""), trustHeader)
	engine.GET("/me", identity.Authenticate(), func(c *gin.Context) {
		ownerID, _ := GetOwnerIDFromContext(c)
		email, _ := GetOwnerEmailFromContext(c)
		c.JSON(http.StatusOK, dto.Success(gin.H{"ownerId": ownerID, "email": email}, "ok"))
	})
	return engine
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var body dto.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid envelope %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestIdentityMiddleware(t *testing.T) {
	valid, err := adapters.SignIdentityToken(testSecret, "", "user_1", "a@example.com", time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	expired, err := adapters.SignIdentityToken(testSecret, "", "user_1", "", -time.Minute)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	tests := []struct {
		name        string
		trustHeader bool
		headers     map[string]string
		wantStatus  int
		wantCode    string
		wantOwner   string
	}{
		{
			name:       "valid bearer token",
			headers:    map[string]string{"Authorization": "Bearer " + valid},
			wantStatus: http.StatusOK,
			wantOwner:  "user_1",
		},
		{
			name:       "missing identity",
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeMissingToken),
		},
		{
			name:       "malformed header",
			headers:    map[string]string{"Authorization": "Token abc"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:       "garbage token",
			headers:    map[string]string{"Authorization": "Bearer not-a-jwt"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:       "expired token",
			headers:    map[string]string{"Authorization": "Bearer " + expired},
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeExpiredToken),
		},
		{
			name:       "header ignored when not trusted",
			headers:    map[string]string{OwnerIDHeader: "user_9"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeMissingToken),
		},
		{
			name:        "trusted header",
			trustHeader: true,
			headers:     map[string]string{OwnerIDHeader: "user_9"},
			wantStatus:  http.StatusOK,
			wantOwner:   "user_9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			newIdentityEngine(tt.trustHeader).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			body := decode(t, rec)
			if tt.wantCode != "" && body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if tt.wantOwner != "" {
				data, _ := body.Data.(map[string]interface{})
				if data["ownerId"] != tt.wantOwner {
					t.Errorf("ownerId = %v, want %s", data["ownerId"], tt.wantOwner)
				}
			}
		})
	}
}

func newLimitedEngine(limiter *RateLimiter) *gin.Engine {
	engine := gin.New()
	engine.Use(limiter.Middleware())
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Success(nil, "pong"))
	})
	return engine
}

func hit(engine *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_MemoryStore(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	engine := newLimitedEngine(NewRateLimiterWithConfig(store, 3, time.Minute))

	for i := 0; i < 3; i++ {
		if rec := hit(engine, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := hit(engine, "10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	body := decode(t, rec)
	if body.Success || body.Code != string(domainerror.ErrCodeRateLimited) {
		t.Errorf("unexpected envelope %+v", body)
	}

	if rec := hit(engine, "10.0.0.2"); rec.Code != http.StatusOK {
		t.Errorf("other IP: status = %d, want 200", rec.Code)
	}

	now = now.Add(time.Minute)
	if rec := hit(engine, "10.0.0.1"); rec.Code != http.StatusOK {
		t.Errorf("after window: status = %d, want 200", rec.Code)
	}

	// Both earlier windows are over: a hit from a new client sweeps them.
	now = now.Add(2 * time.Minute)
	if rec := hit(engine, "10.0.0.3"); rec.Code != http.StatusOK {
		t.Errorf("new IP: status = %d, want 200", rec.Code)
	}
	if len(store.entries) != 1 {
		t.Errorf("expected only the live entry to remain, got %d", len(store.entries))
	}
}

func TestMemoryStore_EvictsExpiredEntries(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		if _, _, err := store.Hit(ctx, fmt.Sprintf("10.0.1.%d", i), time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	now = now.Add(30 * time.Second)
	_, _, _ = store.Hit(ctx, "10.0.2.1", time.Minute)
	if len(store.entries) != 51 {
		t.Fatalf("expected 51 live entries, got %d", len(store.entries))
	}

	now = now.Add(30 * time.Second)
	_, _, _ = store.Hit(ctx, "10.0.2.2", time.Minute)
	if len(store.entries) != 2 {
		t.Errorf("expected 2 entries after expired ones are swept, got %d", len(store.entries))
	}
}

func TestRateLimiter_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine := newLimitedEngine(NewRateLimiterWithConfig(NewRedisStore(client), 2, time.Minute))

	for i := 0; i < 2; i++ {
		if rec := hit(engine, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
	if rec := hit(engine, "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}

	if ttl := mr.TTL(redisKeyPrefix + "10.0.0.1"); ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected window TTL to be set, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if rec := hit(engine, "10.0.0.1"); rec.Code != http.StatusOK {
		t.Errorf("after window: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter_StoreFailureLetsRequestsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	engine := newLimitedEngine(NewRateLimiterWithConfig(NewRedisStore(client), 1, time.Minute))
	for i := 0; i < 3; i++ {
		if rec := hit(engine, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRedisStore_Hit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client)
	for want := int64(1); want <= 3; want++ {
		got, reset, err := store.Hit(context.Background(), "k", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("hits = %d, want %d", got, want)
		}
		if time.Until(reset) > time.Minute {
			t.Errorf("reset too far in the future: %v", reset)
		}
	}
}

func TestDevOnly(t *testing.T) {
	for _, production := range []bool{false, true} {
		engine := gin.New()
		engine.POST("/dev/run", DevOnly(production), func(c *gin.Context) {
			c.JSON(http.StatusOK, dto.Success(nil, "ran"))
		})

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dev/run", nil))

		want := http.StatusOK
		if production {
			want = http.StatusForbidden
		}
		if rec.Code != want {
			t.Errorf("production=%v: status = %d, want %d", production, rec.Code, want)
		}
	}
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery())
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := decode(t, rec); body.Success {
		t.Error("expected failure envelope")
	}
}
