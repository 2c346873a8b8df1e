package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Tous-project/chat-server/internal/domain"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create issues a new opaque session token for the user.
func (r *SessionRepository) Create(ctx context.Context, userID int64) (string, error) {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_sessions (session_id, user_id) VALUES ($1,$2)`,
		token, userID,
	)
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetUser resolves a session token to its user identity.
func (r *SessionRepository) GetUser(ctx context.Context, token string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.name, u.email
		 FROM user_sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.session_id=$1`, token,
	).Scan(&u.ID, &u.Name, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	return u, err
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE session_id=$1`, token)
	return err
}
