package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sohaibalidev/Zeevno/internal/metrics"
)

// OutboundQueue is consumed by the delivery worker that speaks SMTP.
// The storefront itself never talks to a mail server.
const OutboundQueue = "mail.outbound"

type Message struct {
	MessageID  string    `json:"messageId"`
	Kind       string    `json:"kind"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Text       string    `json:"text"`
	HTML       string    `json:"html"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// Mailer hands messages to the delivery pipeline.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MustDialRabbit connects to RabbitMQ or exits. Called once from main.
func MustDialRabbit(url string) *amqp.Connection {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	return conn
}

// RabbitMailer publishes outbound messages to the mail queue as
// persistent JSON.
type RabbitMailer struct {
	ch   *amqp.Channel
	from string
}

func NewRabbitMailer(conn *amqp.Connection, from string) (*RabbitMailer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the queue so publish never fails due to missing infra
	if _, err := ch.QueueDeclare(OutboundQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", OutboundQueue, err)
	}

	return &RabbitMailer{ch: ch, from: from}, nil
}

func (m *RabbitMailer) Close() error {
	return m.ch.Close()
}

func (m *RabbitMailer) Send(ctx context.Context, msg Message) error {
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}
	if msg.From == "" {
		msg.From = m.from
	}
	msg.EnqueuedAt = time.Now().UTC()

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = m.ch.PublishWithContext(
		pubCtx,
		"",            // default exchange
		OutboundQueue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.MessageID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish mail message: %w", err)
	}

	metrics.EmailsEnqueued.WithLabelValues(msg.Kind).Inc()
	return nil
}
