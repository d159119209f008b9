package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"portfolio-site/internal/model"
	"portfolio-site/internal/platform/rabbitmq"
)

type ContactStore interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
}

// ContactArchiveWorker drains the archive queue into the contact store.
type ContactArchiveWorker struct {
	conn      *amqp.Connection
	store     ContactStore
	queueName string
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewContactArchiveWorker(conn *amqp.Connection, store ContactStore, queueName string, logger *slog.Logger) *ContactArchiveWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactArchiveWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		logger:    logger.With("component", "contact_archive_worker"),
	}
}

func (w *ContactArchiveWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	ch, err := w.conn.Channel()
	if err != nil {
		return fmt.Errorf("open worker channel failed: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					w.logger.Warn("archive delivery channel closed")
					return
				}
				if w.Handle(workerCtx, d.Body) {
					_ = d.Ack(false)
				} else {
					_ = d.Nack(false, false)
				}
			}
		}
	}()

	return nil
}

// Handle stores one delivery body and reports whether it should be acked.
// Undecodable and unstorable messages are dropped; the CSV log already holds
// them.
func (w *ContactArchiveWorker) Handle(ctx context.Context, body []byte) bool {
	msg, err := rabbitmq.DecodeContact(body)
	if err != nil {
		w.logger.Error("worker decode contact message failed", "error", err)
		return false
	}
	if err := w.store.Create(ctx, &msg); err != nil {
		w.logger.Error("worker archive contact message failed", "error", err)
		return false
	}
	return true
}

func (w *ContactArchiveWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
