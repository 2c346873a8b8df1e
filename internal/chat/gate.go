package chat

import (
	"context"
	"fmt"

	"github.com/Tous-project/chat-server/internal/domain"
)

// MembershipChecker is the slice of the membership repository the gate
// needs.
type MembershipChecker interface {
	IsMember(ctx context.Context, roomID, userID int64) (bool, error)
}

// Gate authorizes a connection attempt against room membership before a
// relay may start. Denial is terminal for the attempt and happens before
// any bus interaction.
type Gate struct {
	members MembershipChecker
}

func NewGate(members MembershipChecker) *Gate {
	return &Gate{members: members}
}

func (g *Gate) Authorize(ctx context.Context, roomID, userID int64) error {
	ok, err := g.members.IsMember(ctx, roomID, userID)
	if err != nil {
		return fmt.Errorf("membership check: %w", err)
	}
	if !ok {
		return domain.ErrNotMember
	}
	return nil
}
