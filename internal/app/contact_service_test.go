package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"portfolio-site/internal/model"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeMessageLog struct {
	appendFunc func(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error)
	calls      []model.ContactMessage
}

func (f *fakeMessageLog) Append(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
	f.calls = append(f.calls, msg)
	if f.appendFunc != nil {
		return f.appendFunc(ctx, msg)
	}
	msg.CreatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)
	return msg, nil
}

type fakePublisher struct {
	err       error
	published []model.ContactMessage
}

func (f *fakePublisher) Publish(_ context.Context, msg model.ContactMessage) error {
	f.published = append(f.published, msg)
	return f.err
}

type fakeCounter struct {
	err   error
	total int64
}

func (f *fakeCounter) Incr(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.total++
	return f.total, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------------
// ValidateContact
// ---------------------------------------------------------------------------

func TestValidateContact(t *testing.T) {
	cases := []struct {
		name, email, message string
		wantErr              bool
	}{
		{"Ann", "a@x.com", "Hi", false},
		{"", "a@x.com", "Hi", true},
		{"Ann", "", "Hi", true},
		{"Ann", "a@x.com", "", true},
		{"", "", "", true},
		{" ", "not-an-email", "\t", false},
	}
	for _, tc := range cases {
		err := ValidateContact(tc.name, tc.email, tc.message)
		if tc.wantErr && !errors.Is(err, ErrMissingFields) {
			t.Errorf("ValidateContact(%q, %q, %q): expected ErrMissingFields, got %v", tc.name, tc.email, tc.message, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("ValidateContact(%q, %q, %q): unexpected error %v", tc.name, tc.email, tc.message, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestContactService_Submit_Persisted(t *testing.T) {
	log := &fakeMessageLog{}
	svc := NewContactService(log, WithLogger(discardLogger()))

	result, err := svc.Submit(context.Background(), ContactInput{Name: "Ann", Email: "a@x.com", Message: "Hi"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !result.Persisted || result.PersistErr != nil {
		t.Errorf("expected persisted result, got %+v", result)
	}
	if len(log.calls) != 1 {
		t.Fatalf("expected 1 append, got %d", len(log.calls))
	}
	got := log.calls[0]
	if got.Name != "Ann" || got.Email != "a@x.com" || got.Message != "Hi" {
		t.Errorf("fields not passed verbatim: %+v", got)
	}
	if !got.CreatedAt.IsZero() {
		t.Error("service must not assign the timestamp")
	}
	if result.Message.CreatedAt.IsZero() {
		t.Error("expected result to carry the writer's timestamp")
	}
}

func TestContactService_Submit_MissingField_NoAppend(t *testing.T) {
	log := &fakeMessageLog{}
	pub := &fakePublisher{}
	counter := &fakeCounter{}
	svc := NewContactService(log,
		WithLogger(discardLogger()),
		WithArchivePublisher(pub),
		WithSubmissionCounter(counter),
	)

	result, err := svc.Submit(context.Background(), ContactInput{Name: "", Email: "a@x.com", Message: "Hi"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
	if len(log.calls) != 0 || len(pub.published) != 0 || counter.total != 0 {
		t.Error("rejected submission must have no side effects")
	}
}

func TestContactService_Submit_PersistFailureIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	log := &fakeMessageLog{
		appendFunc: func(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
			return msg, errors.New("storage: open: permission denied")
		},
	}
	pub := &fakePublisher{}
	svc := NewContactService(log, WithLogger(logger), WithArchivePublisher(pub))

	result, err := svc.Submit(context.Background(), ContactInput{Name: "Ann", Email: "a@x.com", Message: "Hi"})
	if err != nil {
		t.Fatalf("persistence failure must not be returned, got %v", err)
	}
	if result.Persisted {
		t.Error("expected Persisted=false")
	}
	if result.PersistErr == nil {
		t.Error("expected PersistErr to be recorded")
	}
	if !strings.Contains(buf.String(), "save contact message failed") {
		t.Errorf("expected operator-visible error log, got %q", buf.String())
	}
	if len(pub.published) != 0 {
		t.Error("unpersisted message must not be archived")
	}
}

func TestContactService_Submit_SideChannels(t *testing.T) {
	pub := &fakePublisher{}
	counter := &fakeCounter{}
	svc := NewContactService(&fakeMessageLog{},
		WithLogger(discardLogger()),
		WithArchivePublisher(pub),
		WithSubmissionCounter(counter),
	)

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), ContactInput{Name: "Ann", Email: "a@x.com", Message: "Hi"}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if len(pub.published) != 2 {
		t.Errorf("expected 2 published messages, got %d", len(pub.published))
	}
	if pub.published[0].CreatedAt.IsZero() {
		t.Error("expected archived message to carry the log timestamp")
	}
	if counter.total != 2 {
		t.Errorf("expected counter=2, got %d", counter.total)
	}
}

func TestContactService_Submit_SideChannelErrorsIgnored(t *testing.T) {
	svc := NewContactService(&fakeMessageLog{},
		WithLogger(discardLogger()),
		WithArchivePublisher(&fakePublisher{err: errors.New("channel closed")}),
		WithSubmissionCounter(&fakeCounter{err: errors.New("redis down")}),
	)

	result, err := svc.Submit(context.Background(), ContactInput{Name: "Ann", Email: "a@x.com", Message: "Hi"})
	if err != nil {
		t.Fatalf("side-channel failures must not be returned, got %v", err)
	}
	if !result.Persisted {
		t.Error("expected Persisted=true")
	}
}
