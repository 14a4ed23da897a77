package session

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrIdentityRejected = errors.New("identity verification failed")

// Verifier decides whether a login attempt may claim a username.
type Verifier interface {
	Verify(ctx context.Context, username, credential string) error
}

// UsernameOnly trusts the claimed username. Anyone who can reach the login
// endpoint can act as any user.
type UsernameOnly struct{}

func (UsernameOnly) Verify(context.Context, string, string) error { return nil }

// AccessCode requires a shared code matching a bcrypt hash before any
// username is accepted.
type AccessCode struct {
	hash []byte
}

func NewAccessCode(bcryptHash string) (*AccessCode, error) {
	if _, err := bcrypt.Cost([]byte(bcryptHash)); err != nil {
		return nil, err
	}
	return &AccessCode{hash: []byte(bcryptHash)}, nil
}

func (a *AccessCode) Verify(_ context.Context, _ string, credential string) error {
	if credential == "" {
		return ErrIdentityRejected
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return ErrIdentityRejected
	}
	return nil
}
