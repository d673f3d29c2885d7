// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	testJWTIssuer = "expense-tracker-tests"

	chatCompletionsPath = "/v1/chat/completions"
)

// testContext holds the state of a single scenario.
type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response

	db          *mock.Db
	timeMock    *mock.Time
	apiMock     *mock.ApiMock
	emailSender *email.MockEmailSender

	lastID uuid.UUID
	ids    map[string]uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	serverErr      error
	portInit       sync.Once
	testServerPort int

	sharedTime   = mock.NewTime()
	sharedAPI    = mock.NewApiServer()
	sharedSender = email.NewMockEmailSender()
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		sharedAPI.Start()

		env := map[string]string{
			"ENV":                 config.EnvTest,
			"SERVER_PORT":         strconv.Itoa(testServerPort),
			"DATABASE_DRIVER":     "sqlite",
			"DB_AUTO_MIGRATE":     "false",
			"JWT_SECRET":          testJWTSecret,
			"JWT_ISSUER":          testJWTIssuer,
			"AUTH_TRUST_HEADER":   "true",
			"SCHEDULER_ENABLED":   "false",
			"GEMINI_API_KEY":      "",
			"OPENAI_API_KEY":      "test-openai-key",
			"OPENAI_BASE_URL":     sharedAPI.GetUrl() + "/v1",
			"OPENAI_MODEL":        "gpt-4o-mini",
			"AI_TIMEOUT":          "5s",
			"RATE_LIMIT_REQUESTS": "1000",
			"RATE_LIMIT_WINDOW":   "15m",
			"AMQP_URL":            "",
			"EMAIL_FROM":          "reports@example.com",
		}
		for key, value := range env {
			_ = os.Setenv(key, value)
		}
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		initializePort()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:         fmt.Sprintf("http://127.0.0.1:%d", testServerPort),
		client:      &http.Client{Timeout: 10 * time.Second},
		timeMock:    sharedTime,
		apiMock:     sharedAPI,
		emailSender: sharedSender,
		db: mock.NewDb("expense_tracker", map[string]any{
			"expenses":           &model.ExpenseModel{},
			"recurring_payments": &model.RecurringPaymentModel{},
			"profiles":           &model.ProfileModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Identity steps
	ctx.Given(`^I am identified as "([^"]*)"$`, test.iAmIdentifiedAs)
	ctx.Given(`^I am authenticated with a token for "([^"]*)"$`, test.iAmAuthenticatedWithATokenFor)
	ctx.Given(`^I am authenticated with an expired token for "([^"]*)"$`, test.iAmAuthenticatedWithAnExpiredTokenFor)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Data setup steps
	ctx.Given(`^"([^"]*)" has a profile with email "([^"]*)"$`, test.hasAProfileWithEmail)
	ctx.Given(`^"([^"]*)" spent "([^"]*)" on "([^"]*)" via "([^"]*)" on "([^"]*)"$`, test.spentOnVia)
	ctx.Given(`^"([^"]*)" pays "([^"]*)" "([^"]*)" monthly starting "([^"]*)"$`, test.paysMonthlyStarting)
	ctx.Given(`^"([^"]*)" pays "([^"]*)" "([^"]*)" monthly starting "([^"]*)" due on "([^"]*)"$`, test.paysMonthlyStartingDueOn)
	ctx.Given(`^the client "([^"]*)" has used up its rate limit$`, test.theClientHasUsedUpItsRateLimit)

	// Third-party steps
	ctx.Given(`^the AI provider replies with the review:$`, test.theAIProviderRepliesWithTheReview)
	ctx.Given(`^the AI provider fails with status (\d+)$`, test.theAIProviderFailsWithStatus)
	ctx.Given(`^the email provider rejects every message$`, test.theEmailProviderRejectsEveryMessage)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I remember the response id as "([^"]*)"$`, test.iRememberTheResponseIDAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database and side effect assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^(\d+) emails? should have been sent$`, test.emailsShouldHaveBeenSent)
	ctx.Then(`^an email with subject containing "([^"]*)" should have been sent to "([^"]*)"$`, test.anEmailWithSubjectContainingShouldHaveBeenSentTo)
	ctx.Then(`^the AI provider should have been called (\d+) times?$`, test.theAIProviderShouldHaveBeenCalled)
	ctx.Then(`^the AI prompt should contain "([^"]*)"$`, test.theAIPromptShouldContain)
	ctx.Then(`^the AI request should be authorized with "([^"]*)"$`, test.theAIRequestShouldBeAuthorizedWith)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.lastID = uuid.Nil
	t.ids = make(map[string]uuid.UUID)

	t.timeMock.Reset()
	t.emailSender.Reset()
	t.apiMock.ClearResponses(http.MethodPost, chatCompletionsPath)

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	if t.db != nil {
		return t.db.ClearDB()
	}
	return nil
}

func (t *testContext) startServer() error {
	serverInit.Do(func() {
		cfg := config.Load()

		inj, err := dependency.NewInjector(cfg, t.db.DbConn, func() bool {
			return t.db != nil && t.db.DbConn != nil
		}, dependency.Overrides{
			Clock:       t.timeMock,
			EmailSender: t.emailSender,
			RedisClient: mock.NewRedis(),
		})
		if err != nil {
			serverErr = err
			return
		}

		server := &http.Server{
			Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port),
			Handler: inj.Router.Setup(cfg.Server.Environment),
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if serverErr != nil {
		return serverErr
	}

	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("API server did not become healthy on %s", t.uri)
}
