// Package auth maps opaque session tokens to user identities and hashes
// account passwords.
package auth

import (
	"context"

	"github.com/Tous-project/chat-server/internal/domain"
)

// SessionStore is the slice of the session repository the verifier needs.
type SessionStore interface {
	GetUser(ctx context.Context, token string) (domain.User, error)
}

// Verifier resolves an inbound session token to a user identity before any
// handler or relay runs.
type Verifier struct {
	sessions SessionStore
}

func NewVerifier(sessions SessionStore) *Verifier {
	return &Verifier{sessions: sessions}
}

func (v *Verifier) Verify(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	return v.sessions.GetUser(ctx, token)
}
