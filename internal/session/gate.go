package session

import (
	"sync"

	"go.uber.org/zap"
)

// Gate tracks the binary authenticated/unauthenticated state sourced from
// the identity provider and blocks record operations while unauthenticated.
// The transition into the authenticated state triggers the initial record
// load; the transition out clears in-memory record state.
type Gate struct {
	provider Provider
	log      *zap.Logger

	mu            sync.RWMutex
	authenticated bool

	onAuthenticated   func()
	onUnauthenticated func()

	unsubscribe func()
}

func NewGate(provider Provider, log *zap.Logger) *Gate {
	return &Gate{provider: provider, log: log}
}

// OnAuthenticated registers the callback run on every transition into the
// authenticated state. Must be set before Start.
func (g *Gate) OnAuthenticated(fn func()) {
	g.onAuthenticated = fn
}

// OnUnauthenticated registers the callback run on every transition out of
// the authenticated state. Must be set before Start.
func (g *Gate) OnUnauthenticated(fn func()) {
	g.onUnauthenticated = fn
}

// Start subscribes the gate to session transitions.
func (g *Gate) Start() {
	g.unsubscribe = g.provider.Subscribe(g.handleChange)
}

// Stop cancels the provider subscription.
func (g *Gate) Stop() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

// Authenticated reports whether an authenticated session currently exists.
func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

func (g *Gate) handleChange(s *Session) {
	g.mu.Lock()
	was := g.authenticated
	g.authenticated = s != nil
	now := g.authenticated
	g.mu.Unlock()

	switch {
	case !was && now:
		g.log.Info("session gate opened", zap.String("email", s.Email))
		if g.onAuthenticated != nil {
			g.onAuthenticated()
		}
	case was && !now:
		g.log.Info("session gate closed")
		if g.onUnauthenticated != nil {
			g.onUnauthenticated()
		}
	}
}
