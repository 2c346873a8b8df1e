package api

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Tous-project/chat-server/internal/bus"
	"github.com/Tous-project/chat-server/internal/chat"
	"github.com/Tous-project/chat-server/internal/domain"
	"github.com/Tous-project/chat-server/internal/observability"
	"github.com/Tous-project/chat-server/internal/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RoomDirectory is the slice of the room repository the socket entry needs.
type RoomDirectory interface {
	GetByID(ctx context.Context, id int64) (domain.Room, error)
}

// SocketHandler upgrades an authorized connection attempt and hands the
// socket to a relay. Authentication, room existence and membership are all
// settled before the upgrade; a denied attempt never reaches the bus.
type SocketHandler struct {
	rooms       RoomDirectory
	gate        *chat.Gate
	broker      bus.Bus
	registry    *chat.Registry
	serviceName string
}

func NewSocketHandler(rooms RoomDirectory, gate *chat.Gate, broker bus.Bus, registry *chat.Registry, serviceName string) *SocketHandler {
	return &SocketHandler{
		rooms:       rooms,
		gate:        gate,
		broker:      broker,
		registry:    registry,
		serviceName: serviceName,
	}
}

func (h *SocketHandler) Enter(w http.ResponseWriter, r *http.Request) {
	log := observability.GetLogger(r.Context())

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
	if err := h.gate.Authorize(r.Context(), roomID, user.ID); err != nil {
		writeDomainError(w, err)
		return
	}

	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade error", zap.Error(err))
		return
	}

	observability.WebSocketConnectionsActive.WithLabelValues(h.serviceName).Inc()
	defer observability.WebSocketConnectionsActive.WithLabelValues(h.serviceName).Dec()

	log.Info("connected", zap.Int64("user_id", user.ID), zap.Int64("room_id", roomID))

	relay := chat.NewRelay(ws.NewConn(sock), h.broker, h.registry, roomID, user, log)
	if err := relay.Run(r.Context()); err != nil {
		log.Error("relay terminated", zap.Int64("user_id", user.ID), zap.Int64("room_id", roomID), zap.Error(err))
	}
}
