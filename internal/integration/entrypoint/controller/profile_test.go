package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/expense-tracker/backend/internal/application/usecase/profile"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

func newProfileEngine(tokenEmail string) *gin.Engine {
	repo := adaptertest.NewProfileRepository()
	ctrl := NewProfileController(profile.NewUpsertProfileUseCase(repo), profile.NewGetProfileUseCase(repo))

	engine := gin.New()
	engine.POST("/profile", func(c *gin.Context) {
		c.Set(string(middleware.OwnerIDKey), "owner-1")
		if tokenEmail != "" {
			c.Set(string(middleware.OwnerEmailKey), tokenEmail)
		}
		c.Next()
	}, ctrl.Upsert)
	return engine
}

func TestProfileController_UpsertEmail(t *testing.T) {
	tests := []struct {
		name       string
		tokenEmail string
		body       string
		wantStatus int
		wantEmail  string
	}{
		{
			name:       "token email fills an omitted email",
			tokenEmail: "Asha@Example.com",
			body:       `{"fullName": "Asha Rao"}`,
			wantStatus: http.StatusOK,
			wantEmail:  "asha@example.com",
		},
		{
			name:       "explicit email wins over the token",
			tokenEmail: "asha@example.com",
			body:       `{"fullName": "Asha Rao", "email": "reports@example.com"}`,
			wantStatus: http.StatusOK,
			wantEmail:  "reports@example.com",
		},
		{
			name:       "no email anywhere",
			body:       `{"fullName": "Asha Rao"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			newProfileEngine(tt.tokenEmail).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantEmail == "" {
				return
			}

			var body struct {
				Data struct {
					Email string `json:"email"`
				} `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid envelope: %v", err)
			}
			if body.Data.Email != tt.wantEmail {
				t.Errorf("email = %q, want %q", body.Data.Email, tt.wantEmail)
			}
		})
	}
}
