package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tous-project/chat-server/internal/domain"
)

// RoomStore is the slice of the room repository the handler needs.
type RoomStore interface {
	Create(ctx context.Context, ownerID int64, name, description string) (domain.Room, error)
	GetByID(ctx context.Context, id int64) (domain.Room, error)
	GetByName(ctx context.Context, name string) (domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

// MemberStore is the slice of the membership repository the handler needs.
type MemberStore interface {
	Add(ctx context.Context, roomID, userID int64) error
	Remove(ctx context.Context, roomID, userID int64) error
	ListByRoom(ctx context.Context, roomID int64) ([]domain.User, error)
	ListRoomsByUser(ctx context.Context, userID int64) ([]domain.Room, error)
}

// RoomHandler exposes room CRUD and membership endpoints.
type RoomHandler struct {
	rooms   RoomStore
	members MemberStore
}

func NewRoomHandler(rooms RoomStore, members MemberStore) *RoomHandler {
	return &RoomHandler{rooms: rooms, members: members}
}

func roomIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "roomID"), 10, 64)
}

// List returns all rooms, or a single-element list when a ?name= lookup
// is given.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		room, err := h.rooms.GetByName(r.Context(), name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []domain.Room{room})
		return
	}

	rooms, err := h.rooms.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// Create makes a new room and joins the creator to it.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrNotAuthenticated)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	room, err := h.rooms.Create(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.members.Add(r.Context(), room.ID, user.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID, err := roomIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := h.rooms.Delete(r.Context(), roomID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyRooms lists the rooms the authenticated user has joined.
func (h *RoomHandler) MyRooms(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrNotAuthenticated)
		return
	}
	rooms, err := h.members.ListRoomsByUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrNotAuthenticated)
		return
	}
	roomID, err := roomIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	if _, err := h.rooms.GetByID(r.Context(), roomID); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.members.Add(r.Context(), roomID, user.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"room_id": roomID, "user_id": user.ID})
}

func (h *RoomHandler) Members(w http.ResponseWriter, r *http.Request) {
	roomID, err := roomIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	if _, err := h.rooms.GetByID(r.Context(), roomID); err != nil {
		writeDomainError(w, err)
		return
	}
	users, err := h.members.ListByRoom(r.Context(), roomID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrNotAuthenticated)
		return
	}
	roomID, err := roomIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := h.members.Remove(r.Context(), roomID, user.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
