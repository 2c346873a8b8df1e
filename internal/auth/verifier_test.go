package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/Tous-project/chat-server/internal/domain"
)

type fakeSessions struct {
	users map[string]domain.User
}

func (f *fakeSessions) GetUser(ctx context.Context, token string) (domain.User, error) {
	u, ok := f.users[token]
	if !ok {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	return u, nil
}

func TestVerifierResolvesToken(t *testing.T) {
	alice := domain.User{ID: 1, Name: "alice", Email: "alice@example.com"}
	v := NewVerifier(&fakeSessions{users: map[string]domain.User{"tok": alice}})

	got, err := v.Verify(context.Background(), "tok")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != alice {
		t.Errorf("expected %+v, got %+v", alice, got)
	}
}

func TestVerifierRejectsUnknownToken(t *testing.T) {
	v := NewVerifier(&fakeSessions{users: map[string]domain.User{}})
	_, err := v.Verify(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestVerifierRejectsEmptyToken(t *testing.T) {
	v := NewVerifier(&fakeSessions{users: map[string]domain.User{"": {ID: 9}}})
	_, err := v.Verify(context.Background(), "")
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("an empty token must never authenticate, got %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := ComparePassword(hash, "s3cret"); err != nil {
		t.Errorf("matching password rejected: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}
