package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Tous-project/chat-server/internal/domain"
)

type RoomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, ownerID int64, name, description string) (domain.Room, error) {
	var room domain.Room
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO chat_rooms (owner_id, name, description) VALUES ($1,$2,$3)
		 RETURNING id, owner_id, name, description`,
		ownerID, name, description,
	).Scan(&room.ID, &room.OwnerID, &room.Name, &room.Description)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Room{}, domain.ErrRoomExists
		}
		return domain.Room{}, err
	}
	return room, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (domain.Room, error) {
	var room domain.Room
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, description FROM chat_rooms WHERE id=$1`, id,
	).Scan(&room.ID, &room.OwnerID, &room.Name, &room.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, err
}

func (r *RoomRepository) GetByName(ctx context.Context, name string) (domain.Room, error) {
	var room domain.Room
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, description FROM chat_rooms WHERE name=$1`, name,
	).Scan(&room.ID, &room.OwnerID, &room.Name, &room.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, err
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, description FROM chat_rooms ORDER BY id`)
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

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_rooms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
