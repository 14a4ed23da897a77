package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

const issuer = "chatrelay"

type claims struct {
	Username  string `json:"username"`
	ChatID    string `json:"chat_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// Gate signs session contexts into HS256 tokens kept in a browser cookie.
type Gate struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewGate(secret string, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Gate{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (g *Gate) TTL() time.Duration { return g.ttl }

func (g *Gate) Encode(sc *Context) (string, error) {
	now := g.now()
	cl := claims{
		Username:  sc.Username,
		ChatID:    sc.ChatID,
		SessionID: sc.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sc.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(g.secret)
}

func (g *Gate) Decode(token string) (*Context, error) {
	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return g.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(g.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	sc := &Context{
		UserID:    cl.Subject,
		Username:  cl.Username,
		ChatID:    cl.ChatID,
		SessionID: cl.SessionID,
	}
	if !sc.Authenticated() {
		return nil, ErrInvalidToken
	}
	return sc, nil
}
