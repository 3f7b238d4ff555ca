package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"instalab_backend/internal/logger"
)

// EmailJob is one queued outbound email.
type EmailJob struct {
	To           []string               `json:"to"`
	Subject      string                 `json:"subject"`
	TemplateName string                 `json:"template_name"`
	Data         map[string]interface{} `json:"data"`
	Attempt      int                    `json:"attempt"`
}

// Publisher enqueues email jobs for async delivery.
type Publisher interface {
	PublishEmailJob(ctx context.Context, job EmailJob) error
	Close() error
}

// RabbitQueue is the amqp-backed Publisher.
type RabbitQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewRabbitQueue dials the broker and declares a durable queue.
func NewRabbitQueue(url, queueName string) (*RabbitQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &RabbitQueue{conn: conn, channel: ch, queue: q}, nil
}

func (r *RabbitQueue) PublishEmailJob(ctx context.Context, job EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Consume registers a handler for queued jobs. Delivery is acked on success
// and requeued via PublishEmailJob with a bumped attempt counter on failure,
// up to maxRetries.
func (r *RabbitQueue) Consume(handler func(EmailJob) error, maxRetries int) error {
	msgs, err := r.channel.Consume(
		r.queue.Name,
		"",
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		log := logger.GetLogger()
		for d := range msgs {
			var job EmailJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Error("invalid email job payload", "error", err)
				d.Nack(false, false)
				continue
			}

			if err := handler(job); err != nil {
				log.Warn("email job failed", "subject", job.Subject, "attempt", job.Attempt, "error", err)
				if job.Attempt < maxRetries {
					job.Attempt++
					if pubErr := r.PublishEmailJob(context.Background(), job); pubErr != nil {
						log.Error("failed to requeue email job", "error", pubErr)
					}
				} else {
					log.Error("email job dropped after max retries", "subject", job.Subject)
				}
				d.Ack(false)
				continue
			}

			d.Ack(false)
		}
	}()

	return nil
}

func (r *RabbitQueue) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
