package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/muhammadolammi/portfolioparser/internal/storage"
	"github.com/muhammadolammi/portfolioparser/internal/textextract"
	"github.com/streadway/amqp"
)

const (
	parseJobsQueue       = "parse_jobs"
	parseUpdatesExchange = "parse_updates"
)

var retryBaseWait = 500 * time.Millisecond

// retry retries fn up to attempts times with linear backoff. Errors that
// another attempt cannot fix are returned straight away, and the backoff
// ends early when ctx is done.
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if isPermanent(err) {
			return zero, err
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("retry interrupted: %w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(retryBaseWait * time.Duration(i+1)):
			}
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func isPermanent(err error) bool {
	return errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, storage.ErrInvalidKey) ||
		errors.Is(err, textextract.ErrUnsupportedFormat) ||
		errors.Is(err, textextract.ErrUnreadableDocument) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// ParseError records which step of parsing an upload failed.
type ParseError struct {
	FileName string
	Op       string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// amqpPublisher opens a short-lived channel per publish on a shared connection.
type amqpPublisher struct {
	conn *amqp.Connection
}

func newAMQPPublisher(conn *amqp.Connection) (*amqpPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	if _, err := declareJobQueue(ch); err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(
		parseUpdatesExchange, // name
		"topic",              // kind
		true,                 // durable
		false,                // auto-delete
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &amqpPublisher{conn: conn}, nil
}

func declareJobQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		parseJobsQueue, // queue name
		true,           // durable (survives broker restarts)
		false,          // auto-delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare queue: %w", err)
	}
	return q, nil
}

func (p *amqpPublisher) PublishJob(job ParseJobMessage) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return p.publish("", parseJobsQueue, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *amqpPublisher) PublishUpdate(update ParseUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}
	routingKey := fmt.Sprintf("job.%s", update.JobID)
	return p.publish(parseUpdatesExchange, routingKey, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *amqpPublisher) publish(exchange, routingKey string, msg amqp.Publishing) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
}
