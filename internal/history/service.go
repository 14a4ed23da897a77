package history

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var ErrUnavailable = errors.New("history database is not configured")

type Source interface {
	Records(ctx context.Context, sessionID string) ([]Record, error)
}

type Service struct {
	src Source
}

// NewService accepts a nil source; every fetch then degrades.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// Fetch returns the session's conversation. On a read failure it returns an
// empty, non-nil slice together with the cause, so callers can still render
// the chat.
func (s *Service) Fetch(ctx context.Context, sessionID string) ([]Message, error) {
	if s.src == nil {
		return []Message{}, ErrUnavailable
	}
	records, err := s.src.Records(ctx, sessionID)
	if err != nil {
		log.Printf("[history] read session_id=%s err=%v", sessionID, err)
		return []Message{}, fmt.Errorf("read history: %w", err)
	}
	return Normalize(records), nil
}
