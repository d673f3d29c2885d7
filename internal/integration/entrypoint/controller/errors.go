// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Error code categories shared by every domain: PREFIX-CCNNNN.
const (
	categoryValidation = "01"
	categoryNotFound   = "02"
	categoryConflict   = "03"
)

// respondError converts a domain error into the response envelope.
func respondError(c *gin.Context, err error) {
	status, code, message := mapError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", code,
			"error", err,
		)
	}
	c.JSON(status, dto.Failure(message, code))
}

func mapError(err error) (status int, code string, message string) {
	var (
		expenseErr   *domainerror.ExpenseError
		recurringErr *domainerror.RecurringError
		profileErr   *domainerror.ProfileError
		reportErr    *domainerror.ReportError
		aiErr        *domainerror.AIError
		emailErr     *domainerror.EmailError
		authErr      *domainerror.AuthError
	)

	switch {
	case errors.As(err, &expenseErr):
		return statusForCode(string(expenseErr.Code)), string(expenseErr.Code), expenseErr.Message
	case errors.As(err, &recurringErr):
		return statusForCode(string(recurringErr.Code)), string(recurringErr.Code), recurringErr.Message
	case errors.As(err, &profileErr):
		return statusForCode(string(profileErr.Code)), string(profileErr.Code), profileErr.Message
	case errors.As(err, &reportErr):
		return statusForCode(string(reportErr.Code)), string(reportErr.Code), reportErr.Message
	case errors.As(err, &aiErr):
		return http.StatusInternalServerError, string(aiErr.Code), aiErr.Message
	case errors.As(err, &emailErr):
		return http.StatusInternalServerError, string(emailErr.Code), emailErr.Message
	case errors.As(err, &authErr):
		return statusForAuthCode(authErr.Code), string(authErr.Code), authErr.Message
	default:
		return http.StatusInternalServerError, "", "An internal error occurred"
	}
}

func statusForCode(code string) int {
	_, rest, found := strings.Cut(code, "-")
	if !found || len(rest) < 2 {
		return http.StatusInternalServerError
	}
	switch rest[:2] {
	case categoryValidation:
		return http.StatusBadRequest
	case categoryNotFound:
		return http.StatusNotFound
	case categoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func statusForAuthCode(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusUnauthorized
	}
}

// requireOwner returns the authenticated owner or writes a 401 envelope.
func requireOwner(c *gin.Context) (string, bool) {
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Failure(
			"User not authenticated",
			string(domainerror.ErrCodeMissingToken),
		))
		return "", false
	}
	return ownerID, true
}

func badRequest(c *gin.Context, message string, code string) {
	c.JSON(http.StatusBadRequest, dto.Failure(message, code))
}

// intQuery returns the integer value of a query parameter, or 0 when it is
// absent or not a number. Range checks are left to the use cases.
func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

// optionalIntQuery distinguishes an absent parameter from a present one.
func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := dto.ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
