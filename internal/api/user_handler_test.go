package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Tous-project/chat-server/internal/domain"
)

type fakeUserStore struct {
	users []domain.User
}

func (f *fakeUserStore) Create(ctx context.Context, name, email, passwordHash string) (domain.User, error) {
	u := domain.User{ID: int64(len(f.users) + 1), Name: name, Email: email}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (domain.User, string, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, "", nil
		}
	}
	return domain.User{}, "", domain.ErrUserNotFound
}

func (f *fakeUserStore) List(ctx context.Context) ([]domain.User, error) {
	return f.users, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func userTestRouter(users UserStore) http.Handler {
	h := NewUserHandler(users, nil)
	r := chi.NewRouter()
	r.Get("/users", h.List)
	r.Get("/users/{userID}", h.Get)
	return r
}

func TestUserList(t *testing.T) {
	router := userTestRouter(&fakeUserStore{users: []domain.User{
		{ID: 1, Name: "U1", Email: "u1@example.com"},
		{ID: 2, Name: "U2", Email: "u2@example.com"},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 2 || got[0].Name != "U1" || got[1].Name != "U2" {
		t.Fatalf("unexpected user list %+v", got)
	}
}

func TestUserListEmpty(t *testing.T) {
	router := userTestRouter(&fakeUserStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("empty list must encode as [], got %q", body)
	}
}

func TestUserGet(t *testing.T) {
	router := userTestRouter(&fakeUserStore{users: []domain.User{
		{ID: 7, Name: "U7", Email: "u7@example.com"},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID != 7 || got.Name != "U7" {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestUserGetUnknown(t *testing.T) {
	router := userTestRouter(&fakeUserStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/99", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserGetInvalidID(t *testing.T) {
	router := userTestRouter(&fakeUserStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
