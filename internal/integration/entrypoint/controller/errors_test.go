package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "expense validation",
			err:        domainerror.NewExpenseError(domainerror.ErrCodeInvalidExpenseAmount, "amount must be greater than 0", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "EXP-010001",
		},
		{
			name:       "expense not found",
			err:        domainerror.NewExpenseError(domainerror.ErrCodeExpenseNotFound, "expense not found", domainerror.ErrExpenseNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "EXP-020001",
		},
		{
			name:       "duplicate vendor",
			err:        domainerror.NewRecurringError(domainerror.ErrCodeDuplicateVendor, "duplicate", nil),
			wantStatus: http.StatusConflict,
			wantCode:   "REC-030001",
		},
		{
			name:       "wrapped profile conflict",
			err:        fmt.Errorf("upsert: %w", domainerror.NewProfileError(domainerror.ErrCodeEmailInUse, "email in use", nil)),
			wantStatus: http.StatusConflict,
			wantCode:   "PRF-030001",
		},
		{
			name:       "report month",
			err:        domainerror.NewReportError(domainerror.ErrCodeInvalidReportMonth, "bad month", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "RPT-010001",
		},
		{
			name:       "internal category",
			err:        domainerror.NewReportError(domainerror.ErrCodeReportInternal, "boom", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "RPT-990001",
		},
		{
			name:       "ai validation code is still upstream",
			err:        domainerror.NewAIError(domainerror.ErrCodeAINotConfigured, "not configured", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "AI-010001",
		},
		{
			name:       "email",
			err:        domainerror.NewEmailError(domainerror.ErrCodeEmailSendFailed, "send failed", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "EMAIL-020001",
		},
		{
			name:       "expired token",
			err:        domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "expired", nil),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH-030002",
		},
		{
			name:       "forbidden",
			err:        domainerror.NewAuthError(domainerror.ErrCodeForbidden, "forbidden", nil),
			wantStatus: http.StatusForbidden,
			wantCode:   "AUTH-050001",
		},
		{
			name:       "rate limited",
			err:        domainerror.NewAuthError(domainerror.ErrCodeRateLimited, "slow down", nil),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "AUTH-050002",
		},
		{
			name:       "unknown",
			err:        errors.New("database is on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := mapError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestStatusForCode_Malformed(t *testing.T) {
	for _, code := range []string{"", "EXP", "EXP-0", "EXP-770001"} {
		if got := statusForCode(code); got != http.StatusInternalServerError {
			t.Errorf("statusForCode(%q) = %d, want 500", code, got)
		}
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)

	respondError(c, errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body dto.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if body.Success || body.Message != "An internal error occurred" || body.Data != nil {
		t.Errorf("unexpected envelope %+v", body)
	}
}
