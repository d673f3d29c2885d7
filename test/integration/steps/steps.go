package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

func (t *testContext) iAmIdentifiedAs(ownerID string) error {
	t.headers["X-User-Id"] = ownerID
	return nil
}

func (t *testContext) iAmAuthenticatedWithATokenFor(ownerID string) error {
	token, err := adapters.SignIdentityToken(testJWTSecret, testJWTIssuer, ownerID, ownerID+"@example.com", 15*time.Minute)
	if err != nil {
		return err
	}
	t.headers["Authorization"] = "Bearer " + token
	return nil
}

func (t *testContext) iAmAuthenticatedWithAnExpiredTokenFor(ownerID string) error {
	token, err := adapters.SignIdentityToken(testJWTSecret, testJWTIssuer, ownerID, "", -time.Minute)
	if err != nil {
		return err
	}
	t.headers["Authorization"] = "Bearer " + token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) hasAProfileWithEmail(ownerID, address string) error {
	now := time.Now().UTC()
	profile := &entity.Profile{
		OwnerID:            ownerID,
		FullName:           "Test Owner",
		Email:              address,
		UserType:           entity.UserTypeIndividual,
		IncomeTrackingMode: entity.IncomeModeVariable,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return t.db.DbConn.Create(model.ProfileFromEntity(profile)).Error
}

func (t *testContext) spentOnVia(ownerID, amount, category, paymentMode, date string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return err
	}

	expense := entity.NewExpense(ownerID, value, category, "", entity.PaymentMode(paymentMode), entity.EssentialTypeNeed, day)
	if err := t.db.DbConn.Create(model.ExpenseFromEntity(expense)).Error; err != nil {
		return err
	}
	t.lastID = expense.ID
	return nil
}

func (t *testContext) paysMonthlyStarting(ownerID, vendor, amount, start string) error {
	return t.createRecurring(ownerID, vendor, amount, start, "")
}

func (t *testContext) paysMonthlyStartingDueOn(ownerID, vendor, amount, start, due string) error {
	return t.createRecurring(ownerID, vendor, amount, start, due)
}

func (t *testContext) createRecurring(ownerID, vendor, amount, start, due string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	startDate, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return err
	}

	var nextDue *time.Time
	if due != "" {
		d, err := time.Parse(time.DateOnly, due)
		if err != nil {
			return err
		}
		nextDue = &d
	}

	payment := entity.NewRecurringPayment(ownerID, strings.ToLower(vendor), value, entity.DefaultRecurringCategory, startDate, nextDue)
	if err := t.db.DbConn.Create(model.RecurringPaymentFromEntity(payment)).Error; err != nil {
		return err
	}
	t.lastID = payment.ID
	t.ids[vendor] = payment.ID
	return nil
}

func (t *testContext) theClientHasUsedUpItsRateLimit(clientIP string) error {
	return mock.NewRedis().Set(context.Background(), "ratelimit:"+clientIP, 1000, 15*time.Minute).Err()
}

func (t *testContext) theAIProviderRepliesWithTheReview(review *godog.DocString) error {
	if !json.Valid([]byte(review.Content)) {
		return errors.New("review is not valid JSON")
	}
	t.apiMock.SetResponse(-1, http.MethodPost, chatCompletionsPath, http.StatusOK, chatCompletion(review.Content))
	return nil
}

func (t *testContext) theAIProviderFailsWithStatus(status int) error {
	t.apiMock.SetResponse(-1, http.MethodPost, chatCompletionsPath, status, map[string]any{
		"error": map[string]any{
			"message": "upstream failure",
			"type":    "server_error",
		},
	})
	return nil
}

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o-mini",
		"choices": []any{
			map[string]any{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func (t *testContext) theEmailProviderRejectsEveryMessage() error {
	t.emailSender.SetFailure(errors.New("422 validation error"), true)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iRememberTheResponseIDAs(name string) error {
	if t.lastID == uuid.Nil {
		return errors.New("no id captured from previous responses")
	}
	t.ids[name] = t.lastID
	return nil
}

// replacePlaceholders expands {{last_id}} and {{id:<name>}} markers.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())
	for name, id := range t.ids {
		content = strings.ReplaceAll(content, "{{id:"+name+"}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if data, ok := responseBody["data"].(map[string]any); ok {
		if idStr, ok := data["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastID = id
			}
		}
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.responseObject()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value, found := getFieldValue(body, field)
	if !found || value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value, found := getFieldValue(body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got '%v'", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, found := getFieldValue(body, field); !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value, _ := getFieldValue(body, field)
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	tableModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(tableModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) emailsShouldHaveBeenSent(count int) error {
	if sent := len(t.emailSender.SentEmails); sent != count {
		return fmt.Errorf("expected %d emails, got %d", count, sent)
	}
	return nil
}

func (t *testContext) anEmailWithSubjectContainingShouldHaveBeenSentTo(subject, address string) error {
	for _, sent := range t.emailSender.SentEmails {
		if sent.To == address && strings.Contains(sent.Subject, subject) {
			return nil
		}
	}
	return fmt.Errorf("no email to %s with subject containing %q in %d sent emails", address, subject, len(t.emailSender.SentEmails))
}

func (t *testContext) theAIProviderShouldHaveBeenCalled(count int) error {
	if calls := t.apiMock.RequestCount(http.MethodPost, chatCompletionsPath); calls != count {
		return fmt.Errorf("expected %d AI calls, got %d", count, calls)
	}
	return nil
}

func (t *testContext) theAIPromptShouldContain(text string) error {
	body := t.apiMock.GetRequestBody(http.MethodPost, chatCompletionsPath, 0)
	if body == nil {
		return errors.New("the AI provider was not called")
	}
	messages, _ := body["messages"].([]any)
	for _, m := range messages {
		message, _ := m.(map[string]any)
		if content, _ := message["content"].(string); strings.Contains(content, text) {
			return nil
		}
	}
	return fmt.Errorf("no prompt message contains %q: %v", text, messages)
}

func (t *testContext) theAIRequestShouldBeAuthorizedWith(value string) error {
	headers := t.apiMock.GetRequestHeaders(http.MethodPost, chatCompletionsPath, 0)
	if headers == nil {
		return errors.New("the AI provider was not called")
	}
	if got := headers["Authorization"]; got != value {
		return fmt.Errorf("expected Authorization %q, got %q", value, got)
	}
	return nil
}

// getFieldValue walks a dot separated path through maps and lists. The
// second result reports whether the path exists, so explicit nulls are
// distinguishable from missing fields.
func getFieldValue(object map[string]any, dotSeparatedField string) (any, bool) {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		switch v := field.(type) {
		case []any:
			i, err := strconv.Atoi(currentField)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			field = v[i]
		case map[string]any:
			next, ok := v[currentField]
			if !ok {
				return nil, false
			}
			field = next
		default:
			return nil, false
		}
	}

	return field, true
}
