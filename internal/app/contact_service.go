package app

import (
	"context"
	"errors"
	"log/slog"

	"portfolio-site/internal/model"
)

const (
	ThankYouMessage      = "Thank you for your message! I will get back to you soon."
	MissingFieldsMessage = "Please fill in all fields."
)

// ErrMissingFields is returned when name, email or message is empty.
var ErrMissingFields = errors.New("missing contact field")

type MessageLog interface {
	Append(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error)
}

// ArchivePublisher hands an accepted message to the asynchronous archive.
type ArchivePublisher interface {
	Publish(ctx context.Context, msg model.ContactMessage) error
}

type SubmissionCounter interface {
	Incr(ctx context.Context) (int64, error)
}

type ContactService struct {
	log       MessageLog
	publisher ArchivePublisher
	counter   SubmissionCounter
	logger    *slog.Logger
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// SubmitResult describes an accepted submission. Persisted and PersistErr are
// for operators only: callers report success whatever they hold.
type SubmitResult struct {
	Message    model.ContactMessage
	Persisted  bool
	PersistErr error
}

type ContactOption func(*ContactService)

func WithArchivePublisher(p ArchivePublisher) ContactOption {
	return func(s *ContactService) { s.publisher = p }
}

func WithSubmissionCounter(c SubmissionCounter) ContactOption {
	return func(s *ContactService) { s.counter = c }
}

func WithLogger(l *slog.Logger) ContactOption {
	return func(s *ContactService) { s.logger = l }
}

func NewContactService(log MessageLog, opts ...ContactOption) *ContactService {
	s := &ContactService{
		log:    log,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateContact accepts the three fields when none of them is empty.
// Whitespace counts as content.
func ValidateContact(name, email, message string) error {
	if name == "" || email == "" || message == "" {
		return ErrMissingFields
	}
	return nil
}

// Submit validates input and appends it to the message log. The only error it
// returns is ErrMissingFields; a failed append is recorded on the result and
// logged, never returned.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*SubmitResult, error) {
	if err := ValidateContact(input.Name, input.Email, input.Message); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "contact message received",
		"name", input.Name,
		"email", input.Email,
		"message", input.Message,
	)

	msg := model.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}
	result := &SubmitResult{Message: msg}

	stored, err := s.log.Append(ctx, msg)
	if err != nil {
		result.PersistErr = err
		s.logger.ErrorContext(ctx, "save contact message failed", "error", err)
	} else {
		result.Message = stored
		result.Persisted = true
	}

	s.notify(ctx, result)
	return result, nil
}

func (s *ContactService) notify(ctx context.Context, result *SubmitResult) {
	if s.counter != nil {
		if total, err := s.counter.Incr(ctx); err != nil {
			s.logger.WarnContext(ctx, "count contact submission failed", "error", err)
		} else {
			s.logger.DebugContext(ctx, "contact submission counted", "total", total)
		}
	}
	if s.publisher != nil && result.Persisted {
		if err := s.publisher.Publish(ctx, result.Message); err != nil {
			s.logger.WarnContext(ctx, "publish contact message to archive failed", "error", err)
		}
	}
}
