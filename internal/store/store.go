// Package store holds the relational repositories for users, sessions,
// rooms and memberships. The relay consumes it only through the narrow
// membership check; everything else serves the REST layer.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates the schema if it does not exist. User ids start at 1;
// id 0 stays reserved for the synthesized system sender.
func Migrate(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	name          VARCHAR(20) UNIQUE NOT NULL,
	email         TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS user_sessions (
	id         BIGSERIAL PRIMARY KEY,
	session_id TEXT UNIQUE NOT NULL,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS chat_rooms (
	id          BIGSERIAL PRIMARY KEY,
	owner_id    BIGINT NOT NULL REFERENCES users(id),
	name        VARCHAR(20) UNIQUE NOT NULL,
	description TEXT
);
CREATE TABLE IF NOT EXISTS chat_room_members (
	id      BIGSERIAL PRIMARY KEY,
	room_id BIGINT NOT NULL REFERENCES chat_rooms(id) ON DELETE CASCADE,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	UNIQUE (room_id, user_id)
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
