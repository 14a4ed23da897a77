package chat

import (
	"errors"
	"sort"
	"time"
)

const MaxTitleLen = 100

var (
	ErrNotFound     = errors.New("chat not found")
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrTitleTooLong = errors.New("title must be 100 characters or less")
)

// Chat is one conversation thread owned by a user. SessionID keys the
// thread's messages in the external history store and never changes.
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Chat) OwnedBy(userID string) bool {
	return c != nil && userID != "" && c.UserID == userID
}

// MostRecent returns the chat with the latest UpdatedAt, or nil.
func MostRecent(chats []Chat) *Chat {
	if len(chats) == 0 {
		return nil
	}
	sorted := append([]Chat(nil), chats...)
	SortByRecent(sorted)
	return &sorted[0]
}

// SortByRecent orders chats by UpdatedAt, newest first.
func SortByRecent(chats []Chat) {
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
}
