package adaptertest

import (
	"context"
	"sync"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Clock is a fixed adapter.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock frozen at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Publisher records published events.
type Publisher struct {
	mu        sync.Mutex
	Published []*entity.Expense
	Err       error
}

func (p *Publisher) PublishExpenseCreated(_ context.Context, expense *entity.Expense) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, expense)
	return p.Err
}

// ReviewGenerator returns a canned review or error.
type ReviewGenerator struct {
	Review    *entity.AIReview
	Err       error
	Available bool
	Requests  []*adapter.ReviewRequest
}

func (g *ReviewGenerator) GenerateReview(_ context.Context, request *adapter.ReviewRequest) (*entity.AIReview, error) {
	g.Requests = append(g.Requests, request)
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Review, nil
}

func (g *ReviewGenerator) IsAvailable() bool {
	return g.Available
}

// EmailService records monthly report sends.
type EmailService struct {
	Sent []adapter.MonthlyReportEmailInput

	// FailFor makes sends to these addresses fail with the given error.
	FailFor map[string]error
}

func (s *EmailService) SendMonthlyReport(_ context.Context, input adapter.MonthlyReportEmailInput) (*adapter.SendEmailResult, error) {
	if err, ok := s.FailFor[input.Profile.Email]; ok {
		return nil, err
	}
	s.Sent = append(s.Sent, input)
	return &adapter.SendEmailResult{MessageID: "msg-" + input.Profile.OwnerID}, nil
}

var (
	_ adapter.Clock                      = (*Clock)(nil)
	_ adapter.ExpenseEventPublisher      = (*Publisher)(nil)
	_ adapter.ReviewGenerator            = (*ReviewGenerator)(nil)
	_ adapter.EmailService               = (*EmailService)(nil)
	_ adapter.ExpenseRepository          = (*ExpenseRepository)(nil)
	_ adapter.RecurringPaymentRepository = (*RecurringPaymentRepository)(nil)
	_ adapter.ProfileRepository          = (*ProfileRepository)(nil)
)
