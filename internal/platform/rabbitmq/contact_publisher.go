package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"portfolio-site/internal/model"
)

// ContactPublisher sends accepted contact messages to the archive queue.
type ContactPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewContactPublisher(conn *amqp.Connection, queueName string) *ContactPublisher {
	return &ContactPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ContactPublisher) Publish(ctx context.Context, msg model.ContactMessage) error {
	payload, err := EncodeContact(msg)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
			Timestamp:    msg.CreatedAt,
		},
	); err != nil {
		return fmt.Errorf("publish contact message failed: %w", err)
	}
	return nil
}

func EncodeContact(msg model.ContactMessage) ([]byte, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal contact payload failed: %w", err)
	}
	return payload, nil
}

func DecodeContact(body []byte) (model.ContactMessage, error) {
	var msg model.ContactMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return model.ContactMessage{}, fmt.Errorf("unmarshal contact payload failed: %w", err)
	}
	return msg, nil
}
