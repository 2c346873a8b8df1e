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

type fakeRoomStore struct {
	rooms []domain.Room
}

func (f *fakeRoomStore) Create(ctx context.Context, ownerID int64, name, description string) (domain.Room, error) {
	room := domain.Room{ID: int64(len(f.rooms) + 1), OwnerID: ownerID, Name: name, Description: description}
	f.rooms = append(f.rooms, room)
	return room, nil
}

func (f *fakeRoomStore) GetByID(ctx context.Context, id int64) (domain.Room, error) {
	for _, room := range f.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return domain.Room{}, domain.ErrRoomNotFound
}

func (f *fakeRoomStore) GetByName(ctx context.Context, name string) (domain.Room, error) {
	for _, room := range f.rooms {
		if room.Name == name {
			return room, nil
		}
	}
	return domain.Room{}, domain.ErrRoomNotFound
}

func (f *fakeRoomStore) List(ctx context.Context) ([]domain.Room, error) {
	return f.rooms, nil
}

func (f *fakeRoomStore) Delete(ctx context.Context, id int64) error {
	for i, room := range f.rooms {
		if room.ID == id {
			f.rooms = append(f.rooms[:i], f.rooms[i+1:]...)
			return nil
		}
	}
	return domain.ErrRoomNotFound
}

func roomTestRouter(rooms RoomStore) http.Handler {
	h := NewRoomHandler(rooms, nil)
	r := chi.NewRouter()
	r.Get("/rooms", h.List)
	return r
}

func TestRoomList(t *testing.T) {
	router := roomTestRouter(&fakeRoomStore{rooms: []domain.Room{
		{ID: 1, OwnerID: 1, Name: "general"},
		{ID: 2, OwnerID: 2, Name: "random"},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []domain.Room
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected room list %+v", got)
	}
}

func TestRoomLookupByName(t *testing.T) {
	router := roomTestRouter(&fakeRoomStore{rooms: []domain.Room{
		{ID: 1, OwnerID: 1, Name: "general"},
		{ID: 2, OwnerID: 2, Name: "random"},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms?name=random", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []domain.Room
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 || got[0].Name != "random" {
		t.Fatalf("expected the single matching room, got %+v", got)
	}
}

func TestRoomLookupByNameUnknown(t *testing.T) {
	router := roomTestRouter(&fakeRoomStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms?name=nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
