package contact

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// ErrMissingFields is returned when a submission is missing name, email or
// message after trimming.
var ErrMissingFields = errors.New("missing_fields")

const (
	maxNameLen    = 200
	maxEmailLen   = 200
	maxMessageLen = 2000
)

type Message struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// Store keeps contact messages newest-first in memory and mirrors the full
// list to a JSON file after every insertion. The file write is best-effort:
// a failure is logged and does not roll back the in-memory insert.
type Store struct {
	logger *slog.Logger
	path   string

	mu       sync.Mutex
	messages []Message
	now      func() time.Time
}

// Open loads prior messages from path. A missing or unparsable file starts
// the store empty; neither is fatal.
func Open(logger *slog.Logger, path string) *Store {
	s := &Store{
		logger:   logger,
		path:     path,
		messages: []Message{},
		now:      time.Now,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("messages_read_failed", "path", path, "error", err)
		}
		return s
	}
	if len(raw) == 0 {
		return s
	}
	if err := json.Unmarshal(raw, &s.messages); err != nil {
		logger.Warn("messages_parse_failed", "path", path, "error", err)
		s.messages = []Message{}
	}
	return s
}

// Append validates and stores one submission, newest-first, then rewrites
// the backing file wholesale.
func (s *Store) Append(name, email, message string) (Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return Message{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	msg := Message{
		ID:      now.UnixMilli(),
		Name:    truncate(name, maxNameLen),
		Email:   truncate(email, maxEmailLen),
		Message: truncate(message, maxMessageLen),
		Date:    now.UTC().Format(time.RFC3339),
	}

	s.messages = append([]Message{msg}, s.messages...)
	s.persistLocked()

	s.logger.Info("message_saved", "id", msg.ID, "name", msg.Name)
	return msg, nil
}

// List returns a copy of the in-memory list, newest first.
func (s *Store) List() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) persistLocked() {
	data, err := json.MarshalIndent(s.messages, "", "  ")
	if err != nil {
		s.logger.Error("messages_encode_failed", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error("messages_write_failed", "path", s.path, "error", err)
	}
}

func truncate(v string, max int) string {
	if len(v) <= max {
		return v
	}
	return v[:max]
}
