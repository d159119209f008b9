package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"portfolio-site/internal/model"
)

// TimestampLayout is the on-disk timestamp format (second precision, local clock).
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the first row of every log file.
var Header = []string{"timestamp", "name", "email", "message"}

// CSVLog appends contact messages to a UTF-8 CSV file. It never rewrites
// existing rows. There is no locking: each Append issues a single write on an
// O_APPEND descriptor and relies on that being atomic for small rows.
type CSVLog struct {
	path string
	now  func() time.Time
}

func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path, now: time.Now}
}

// WithClock replaces the clock used to stamp rows.
func (l *CSVLog) WithClock(now func() time.Time) *CSVLog {
	l.now = now
	return l
}

func (l *CSVLog) Path() string {
	return l.path
}

// Append stamps msg with the current local time and appends it as one row.
// The header is written first when the file does not exist yet. The returned
// message carries the assigned timestamp, truncated to seconds.
func (l *CSVLog) Append(_ context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return msg, fmt.Errorf("storage: mkdir: %w", err)
		}
	}

	writeHeader := false
	if _, err := os.Stat(l.path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return msg, fmt.Errorf("storage: stat: %w", err)
		}
		writeHeader = true
	}

	msg.CreatedAt = l.now().Truncate(time.Second)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if writeHeader {
		if err := w.Write(Header); err != nil {
			return msg, fmt.Errorf("storage: encode header: %w", err)
		}
	}
	if err := w.Write(record(msg)); err != nil {
		return msg, fmt.Errorf("storage: encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return msg, fmt.Errorf("storage: encode: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return msg, fmt.Errorf("storage: open: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return msg, fmt.Errorf("storage: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return msg, fmt.Errorf("storage: close: %w", err)
	}
	return msg, nil
}

func record(msg model.ContactMessage) []string {
	return []string{
		msg.CreatedAt.Format(TimestampLayout),
		msg.Name,
		msg.Email,
		msg.Message,
	}
}
