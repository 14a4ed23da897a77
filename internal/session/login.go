package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/suPer8Hu/chatrelay/internal/chat"
	"github.com/suPer8Hu/chatrelay/internal/users"
)

const MinUsernameLen = 2

var ErrUsernameTooShort = errors.New("username must be at least 2 characters long")

type Authenticator struct {
	users    *users.Registry
	chats    *chat.Registry
	verifier Verifier
}

func NewAuthenticator(u *users.Registry, c *chat.Registry, v Verifier) *Authenticator {
	if v == nil {
		v = UsernameOnly{}
	}
	return &Authenticator{users: u, chats: c, verifier: v}
}

// Login records the user and returns a session bound to their most recently
// updated chat, creating a first chat when they have none.
func (a *Authenticator) Login(ctx context.Context, username, credential string) (*Context, error) {
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < MinUsernameLen {
		return nil, ErrUsernameTooShort
	}
	if err := a.verifier.Verify(ctx, username, credential); err != nil {
		return nil, err
	}

	u, err := a.users.Upsert(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	sc := &Context{UserID: u.ID, Username: username}

	active := chat.MostRecent(a.chats.ListByUser(ctx, u.ID))
	if active == nil {
		active, err = a.chats.Create(ctx, u.ID, "")
		if err != nil {
			return nil, fmt.Errorf("create default chat: %w", err)
		}
	}
	sc.Bind(active)
	return sc, nil
}

// EnsureActiveChat binds a new chat when the session has none.
func (a *Authenticator) EnsureActiveChat(ctx context.Context, sc *Context) (bool, error) {
	if sc.HasActiveChat() {
		return false, nil
	}
	c, err := a.chats.Create(ctx, sc.UserID, "")
	if err != nil {
		return false, err
	}
	sc.Bind(c)
	return true, nil
}
