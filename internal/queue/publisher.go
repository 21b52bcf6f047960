package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishGoalCompleted(ctx context.Context, event GoalCompletedEvent) error
	Close() error
}

// LogPublisher writes events to the log instead of a broker. Used in
// development and whenever AMQP_URL is unset.
type LogPublisher struct{}

func (LogPublisher) PublishGoalCompleted(_ context.Context, event GoalCompletedEvent) error {
	slog.Info("goal completed event",
		"queue", GoalCompletedQueue,
		"goal_id", event.GoalID,
		"user_id", event.UserID,
		"completed_at", event.CompletedAt)
	return nil
}

func (LogPublisher) Close() error { return nil }

// AMQPPublisher keeps one connection and channel for the process lifetime.
// amqp channels are not safe for concurrent use, hence the mutex.
type AMQPPublisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		GoalCompletedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) PublishGoalCompleted(ctx context.Context, event GoalCompletedEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		"",                 // default exchange
		GoalCompletedQueue, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}

	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_ = p.ch.Close()
	return p.conn.Close()
}

func encode(event GoalCompletedEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", GoalCompletedQueue, err)
	}
	return body, nil
}

// New returns an AMQP publisher when url is set and the broker answers,
// otherwise a LogPublisher.
func New(url string) Publisher {
	if url == "" {
		return LogPublisher{}
	}

	p, err := NewAMQPPublisher(url)
	if err != nil {
		slog.Warn("message broker unavailable, logging events instead", "error", err)
		return LogPublisher{}
	}

	return p
}
