package domain

import "errors"

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound  = errors.New("user not found")
	ErrEmailConflict = errors.New("email already in use")
	ErrNameConflict  = errors.New("name already in use")

	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")

	ErrNotMember     = errors.New("not a member of the room")
	ErrAlreadyJoined = errors.New("already joined the room")
)
