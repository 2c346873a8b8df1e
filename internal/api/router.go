package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tous-project/chat-server/internal/auth"
	"github.com/Tous-project/chat-server/internal/observability"
)

// NewRouter wires every HTTP route: account and room CRUD, membership
// management, health, and the WebSocket entry into the relay.
func NewRouter(serviceName string, verifier *auth.Verifier, users *UserHandler, rooms *RoomHandler, socket *SocketHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(observability.MetricsMiddleware(serviceName))

	r.Get("/healthz", observability.HealthLiveHandler)

	r.Post("/users", users.Register)
	r.Post("/users/login", users.Login)

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(verifier))

		r.Post("/users/logout", users.Logout)
		r.Delete("/users/me", users.DeleteMe)
		r.Get("/users", users.List)
		r.Get("/users/{userID}", users.Get)

		r.Get("/rooms", rooms.List)
		r.Post("/rooms", rooms.Create)
		r.Get("/rooms/me", rooms.MyRooms)
		r.Delete("/rooms/{roomID}", rooms.Delete)

		r.Post("/rooms/{roomID}/members", rooms.Join)
		r.Get("/rooms/{roomID}/members", rooms.Members)
		r.Delete("/rooms/{roomID}/members", rooms.Leave)

		r.Get("/ws/rooms/{roomID}", socket.Enter)
	})

	return r
}
