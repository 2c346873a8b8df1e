package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Tous-project/chat-server/internal/auth"
	"github.com/Tous-project/chat-server/internal/domain"
	"github.com/Tous-project/chat-server/internal/observability"
)

// UserStore is the slice of the user repository the handler needs.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, string, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// SessionIssuer issues and revokes opaque session tokens.
type SessionIssuer interface {
	Create(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, token string) error
}

// UserHandler exposes account and session endpoints.
type UserHandler struct {
	users    UserStore
	sessions SessionIssuer
}

func NewUserHandler(users UserStore, sessions SessionIssuer) *UserHandler {
	return &UserHandler{users: users, sessions: sessions}
}

// Register creates a new account.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.GetLogger(r.Context()).Info("user registered",
		zap.Int64("user_id", user.ID), zap.String("name", user.Name))
	writeJSON(w, http.StatusCreated, user)
}

// Login checks credentials and issues a session token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, hash, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeDomainError(w, domain.ErrInvalidCredentials)
		return
	}
	if err := auth.ComparePassword(hash, req.Password); err != nil {
		writeDomainError(w, domain.ErrInvalidCredentials)
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": token,
		"user":       user,
	})
}

// List returns every registered account.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Get returns one account by id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout deletes the presented session.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.Context(), sessionToken(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMe removes the authenticated account.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrNotAuthenticated)
		return
	}
	if err := h.users.Delete(r.Context(), user.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
