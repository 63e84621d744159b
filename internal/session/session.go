// Package session gates every record operation behind an authenticated
// session issued by an identity provider.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

// Session is proof of authentication. Its token accompanies every record
// operation.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Provider is the identity-provider contract. Subscribers are notified on
// every session transition: a non-nil session on sign-in, nil on sign-out.
type Provider interface {
	// CurrentSession resolves the session behind a token. Absent, expired
	// or revoked tokens yield (nil, nil): no session, not an error.
	CurrentSession(ctx context.Context, token string) (*Session, error)

	// Subscribe registers a callback fired on every session transition.
	// The returned function cancels the subscription.
	Subscribe(fn func(*Session)) (cancel func())

	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
}
