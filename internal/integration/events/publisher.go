// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseCreatedEvent is the body of an expense.created message.
type ExpenseCreatedEvent struct {
	Event           string    `json:"event"`
	ExpenseID       string    `json:"expenseId"`
	OwnerID         string    `json:"ownerId"`
	Amount          string    `json:"amount"`
	Category        string    `json:"category"`
	PaymentMode     string    `json:"paymentMode"`
	EssentialType   string    `json:"essentialType"`
	Date            string    `json:"date"`
	RecurringVendor *string   `json:"recurringVendor,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewExpenseCreatedEvent builds the event for expense.
func NewExpenseCreatedEvent(expense *entity.Expense) ExpenseCreatedEvent {
	return ExpenseCreatedEvent{
		Event:           "expense.created",
		ExpenseID:       expense.ID.String(),
		OwnerID:         expense.OwnerID,
		Amount:          expense.Amount.StringFixed(2),
		Category:        expense.Category,
		PaymentMode:     string(expense.PaymentMode),
		EssentialType:   string(expense.EssentialType),
		Date:            expense.Date.Format(time.DateOnly),
		RecurringVendor: expense.RecurringVendor,
		OccurredAt:      time.Now().UTC(),
	}
}

// AMQPPublisher publishes expense events to a durable topic exchange.
type AMQPPublisher struct {
	mu         sync.Mutex
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
}

// NewAMQPPublisher dials url and declares the exchange.
func NewAMQPPublisher(url, exchange, routingKey string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{
		conn:       conn,
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

// PublishExpenseCreated publishes a persistent JSON message for expense.
func (p *AMQPPublisher) PublishExpenseCreated(ctx context.Context, expense *entity.Expense) error {
	body, err := json.Marshal(NewExpenseCreatedEvent(expense))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    expense.ID.String(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published expense.created",
		"expense_id", expense.ID,
		"exchange", p.exchange,
		"routing_key", p.routingKey,
	)

	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher discards events. It is used when no broker is configured.
type NoopPublisher struct{}

// PublishExpenseCreated does nothing.
func (NoopPublisher) PublishExpenseCreated(context.Context, *entity.Expense) error {
	return nil
}

var (
	_ adapter.ExpenseEventPublisher = (*AMQPPublisher)(nil)
	_ adapter.ExpenseEventPublisher = NoopPublisher{}
)
