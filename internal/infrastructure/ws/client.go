package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/broadcast"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxInboundSize = 512
)

// Client pipes one hub subscription onto one websocket connection. The
// socket is outbound-only: inbound frames are drained just to observe pongs
// and disconnects.
type Client struct {
	conn       *connWrapper
	hub        *broadcast.Hub
	sub        *broadcast.Subscriber
	disasterID string
	logger     logging.Logger

	closeOnce sync.Once
}

// NewClient subscribes to the hub and wraps the connection. An empty
// disasterID streams every mutation; otherwise only events for that disaster
// are forwarded.
func NewClient(conn *websocket.Conn, hub *broadcast.Hub, disasterID string, logger logging.Logger) *Client {
	return &Client{
		conn:       newConnWrapper(conn),
		hub:        hub,
		sub:        hub.Subscribe(),
		disasterID: disasterID,
		logger:     logger,
	}
}

// Run pumps events until either side goes away, then tears the client down.
func (c *Client) Run() {
	go c.readPump()
	c.writePump()
}

func (c *Client) wants(ev domain.MutationEvent) bool {
	return c.disasterID == "" || ev.DisasterID == c.disasterID
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case ev, ok := <-c.sub.Events():
			if !ok {
				// Hub shut down underneath us.
				_ = c.conn.WriteClose(websocket.CloseGoingAway, "server shutting down")
				return
			}

			if !c.wants(ev) {
				continue
			}

			if err := c.conn.WriteJSON(ev); err != nil {
				c.logger.Debug(logging.Broadcast, logging.Publish, "websocket write failed, dropping subscriber", map[logging.ExtraKey]any{
					"SubscriberId": c.sub.ID(),
					"Error":        err.Error(),
				})
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer c.shutdown()

	c.conn.ConfigureRead(maxInboundSize, pongWait)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		c.hub.Unsubscribe(c.sub)
		_ = c.conn.Close()
	})
}
