package session

import "github.com/suPer8Hu/chatrelay/internal/chat"

// Context is what a browser session carries between requests: who is logged
// in and which chat is active. The zero value is an anonymous session.
type Context struct {
	UserID    string
	Username  string
	ChatID    string
	SessionID string
}

func (c *Context) Authenticated() bool {
	return c != nil && c.UserID != "" && c.Username != ""
}

func (c *Context) HasActiveChat() bool {
	return c.Authenticated() && c.ChatID != "" && c.SessionID != ""
}

// Bind makes ch the active chat.
func (c *Context) Bind(ch *chat.Chat) {
	c.ChatID = ch.ID
	c.SessionID = ch.SessionID
}

func (c *Context) Unbind() {
	c.ChatID = ""
	c.SessionID = ""
}
