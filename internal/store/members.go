package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Tous-project/chat-server/internal/domain"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Add(ctx context.Context, roomID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_room_members (room_id, user_id) VALUES ($1,$2)`,
		roomID, userID,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return domain.ErrAlreadyJoined
			case "23503":
				return domain.ErrRoomNotFound
			}
		}
		return err
	}
	return nil
}

func (r *MemberRepository) Remove(ctx context.Context, roomID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_room_members WHERE room_id=$1 AND user_id=$2`,
		roomID, userID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotMember
	}
	return nil
}

func (r *MemberRepository) IsMember(ctx context.Context, roomID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM chat_room_members WHERE room_id=$1 AND user_id=$2)`,
		roomID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *MemberRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email
		 FROM chat_room_members m JOIN users u ON u.id = m.user_id
		 WHERE m.room_id=$1 ORDER BY u.id`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *MemberRepository) ListRoomsByUser(ctx context.Context, userID int64) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.owner_id, c.name, c.description
		 FROM chat_room_members m JOIN chat_rooms c ON c.id = m.room_id
		 WHERE m.user_id=$1 ORDER BY c.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.OwnerID, &room.Name, &room.Description); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
