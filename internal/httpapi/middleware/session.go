package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/common"
	"github.com/suPer8Hu/chatrelay/internal/session"
)

const SessionKey = "session"

// SessionCookie moves session.Context values in and out of a signed cookie.
type SessionCookie struct {
	Gate   *session.Gate
	Name   string
	Secure bool
}

// Load decodes the cookie into the request context. Missing or invalid
// cookies yield an anonymous session.
func (s SessionCookie) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := &session.Context{}
		if tok, err := c.Cookie(s.Name); err == nil && tok != "" {
			if decoded, err := s.Gate.Decode(tok); err == nil {
				sc = decoded
			}
		}
		c.Set(SessionKey, sc)
		c.Next()
	}
}

// Save re-issues the cookie; call it before writing the response body.
func (s SessionCookie) Save(c *gin.Context, sc *session.Context) error {
	tok, err := s.Gate.Encode(sc)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, tok, int(s.Gate.TTL().Seconds()), "/", "", s.Secure, true)
	c.Set(SessionKey, sc)
	return nil
}

func (s SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
	c.Set(SessionKey, &session.Context{})
}

// CurrentSession never returns nil.
func CurrentSession(c *gin.Context) *session.Context {
	if v, ok := c.Get(SessionKey); ok {
		if sc, ok := v.(*session.Context); ok && sc != nil {
			return sc
		}
	}
	return &session.Context{}
}

func APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			common.AbortFail(c, http.StatusUnauthorized, 40100, "Authentication required.")
			return
		}
		c.Next()
	}
}

func PageAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
