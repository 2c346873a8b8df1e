package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/Tous-project/chat-server/internal/domain"
)

type fakeMembers struct {
	isMemberFunc func(ctx context.Context, roomID, userID int64) (bool, error)
}

func (f *fakeMembers) IsMember(ctx context.Context, roomID, userID int64) (bool, error) {
	return f.isMemberFunc(ctx, roomID, userID)
}

func TestGateAllowsMember(t *testing.T) {
	g := NewGate(&fakeMembers{
		isMemberFunc: func(ctx context.Context, roomID, userID int64) (bool, error) {
			return roomID == 42 && userID == 1, nil
		},
	})
	if err := g.Authorize(context.Background(), 42, 1); err != nil {
		t.Errorf("member should be allowed, got %v", err)
	}
}

func TestGateDeniesNonMember(t *testing.T) {
	g := NewGate(&fakeMembers{
		isMemberFunc: func(ctx context.Context, roomID, userID int64) (bool, error) {
			return false, nil
		},
	})
	err := g.Authorize(context.Background(), 42, 99)
	if !errors.Is(err, domain.ErrNotMember) {
		t.Errorf("expected ErrNotMember, got %v", err)
	}
}

func TestGatePropagatesRepositoryError(t *testing.T) {
	boom := errors.New("db down")
	g := NewGate(&fakeMembers{
		isMemberFunc: func(ctx context.Context, roomID, userID int64) (bool, error) {
			return false, boom
		},
	})
	err := g.Authorize(context.Background(), 42, 1)
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
	if errors.Is(err, domain.ErrNotMember) {
		t.Error("a repository failure must not masquerade as a denial")
	}
}
