package health

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cindermoth/reliefgrid/internal/infrastructure/broadcast"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/json"
)

var (
	startTime       = time.Now()
	healthy   int32 = 1 // 1: healthy, 0: unhealthy
)

type Handler struct {
	hub *broadcast.Hub
}

func NewHandler(hub *broadcast.Hub) *Handler {
	return &Handler{
		hub: hub,
	}
}

// SetUnhealthy flips the health endpoints to 503 during shutdown, so load
// balancers drain the instance before the listener closes.
func SetUnhealthy() {
	atomic.StoreInt32(&healthy, 0)
}

// GetHealth godoc
// @Summary      Health check
// @Description  Returns the service status, uptime, and the number of connected stream observers
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is healthy"
// @Failure      503 {object} healthResponse "Service is draining"
// @Router       /health [get]
// @Router       /healthz [get]
// @Router       /ready [get]
// @Router       /live [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	data := healthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(startTime).Round(time.Second).String(),
		Subscribers: h.hub.SubscriberCount(),
	}

	if atomic.LoadInt32(&healthy) == 0 {
		status = http.StatusServiceUnavailable
		data.Status = "unhealthy"
	}

	json.Write(w, status, data)
}
