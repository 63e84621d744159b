package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/odontoflow/odontoflow/pkg/auth"
)

const minPasswordLength = 8

// LocalProvider is an identity provider backed by the user repository and
// signed session tokens. It satisfies the Provider contract the rest of the
// application is written against.
type LocalProvider struct {
	users  UserRepository
	tokens *auth.TokenManager
	log    *zap.Logger

	mu          sync.Mutex
	subscribers map[int]func(*Session)
	nextSubID   int
	// revoked maps signed-out tokens to their natural expiry so the set
	// can be pruned once the tokens would have died anyway.
	revoked map[string]time.Time
}

func NewLocalProvider(users UserRepository, tokens *auth.TokenManager, log *zap.Logger) *LocalProvider {
	return &LocalProvider{
		users:       users,
		tokens:      tokens,
		log:         log,
		subscribers: make(map[int]func(*Session)),
		revoked:     make(map[string]time.Time),
	}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmailRequired
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.users.Create(ctx, u); err != nil {
		return err
	}

	p.log.Info("user signed up", zap.String("user_id", u.ID.String()))
	return nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Dummy hash so response time does not reveal whether the
			// email exists.
			_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		p.log.Warn("failed sign-in attempt", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := p.tokens.Mint(user.ID, user.Email)
	if err != nil {
		p.log.Error("failed to mint session token", zap.Error(err))
		return nil, fmt.Errorf("minting session token: %w", err)
	}

	s := &Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}

	p.log.Info("user signed in", zap.String("user_id", user.ID.String()))
	p.notify(s)
	return s, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.tokens.Validate(token)
	if err != nil {
		// Signing out an already-dead token is a no-op.
		return nil
	}

	p.mu.Lock()
	p.revoked[token] = claims.ExpiresAt
	p.pruneRevokedLocked(time.Now())
	p.mu.Unlock()

	p.log.Info("user signed out", zap.String("user_id", claims.UserID.String()))
	p.notify(nil)
	return nil
}

func (p *LocalProvider) CurrentSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	p.mu.Lock()
	_, isRevoked := p.revoked[token]
	p.mu.Unlock()
	if isRevoked {
		return nil, nil
	}

	claims, err := p.tokens.Validate(token)
	if err != nil {
		return nil, nil
	}

	return &Session{
		Token:     token,
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (p *LocalProvider) Subscribe(fn func(*Session)) func() {
	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *LocalProvider) notify(s *Session) {
	p.mu.Lock()
	fns := make([]func(*Session), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func (p *LocalProvider) pruneRevokedLocked(now time.Time) {
	for token, expiresAt := range p.revoked {
		if now.After(expiresAt) {
			delete(p.revoked, token)
		}
	}
}
