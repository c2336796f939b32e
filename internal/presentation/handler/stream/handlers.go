package stream

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/cindermoth/reliefgrid/internal/infrastructure/broadcast"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/json"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/ws"
	"github.com/cindermoth/reliefgrid/internal/persistence/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type Handler struct {
	store  *store.Store
	hub    *broadcast.Hub
	logger logging.Logger
}

func NewHandler(store *store.Store, hub *broadcast.Hub, logger logging.Logger) *Handler {
	return &Handler{
		store:  store,
		hub:    hub,
		logger: logger,
	}
}

// StreamHandler godoc
// @Summary      Subscribe to mutation events
// @Description  Upgrades the connection to a WebSocket and streams mutation events as they are committed. Pass the optional disaster query parameter to receive only events for that disaster record.
// @Tags         stream
// @Param        disaster query string false "Disaster record ID to filter on"
// @Success      101 {string} string "Switching protocols"
// @Failure      404 {object} json.ErrorResponse "Disaster record not found"
// @Router       /stream [get]
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	disasterID := r.URL.Query().Get("disaster")
	if disasterID != "" {
		if _, err := h.store.GetDisaster(r.Context(), disasterID); err != nil {
			json.WriteNotFoundError(w, "Disaster record not found")
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(conn, h.hub, disasterID, h.logger)

	// Run on its own goroutine so the request handler returns before the
	// route timeout fires; a hijacked connection cannot take a 504.
	go client.Run()
}
