package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// autoTitle builds "Chat-3 (Jan 7, 22:30)". n is one more than the number of
// chats the user has right now, so numbers repeat after deletions.
func autoTitle(n int, now time.Time) string {
	return fmt.Sprintf("Chat-%d (%s)", n, now.Format("Jan 2, 15:04"))
}

// NormalizeTitle trims a user-supplied title and checks its length.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return title, nil
}
