package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"auto_grow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Clients authenticate with Basic
// credentials, so any origin is accepted.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Stream the latest tracking of a device
// @Description  WebSocket. Sends {"type":"tracking","data":...} every interval, or {"type":"waiting"} while the device has no readings.
// @Tags         trackings
// @Param        deviceId     path   int     true   "Device ID"
// @Param        interval     query  string  false  "Go duration, max 10s"
// @Param        interval_ms  query  int     false  "Milliseconds, max 10000"
// @Router       /ws/trackings/{deviceId} [get]
// @Security     BasicAuth
func (h *Handler) wsLatestTracking(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendLatest(ctx, conn, deviceID); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "device_id", deviceID, "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendLatest(ctx, conn, deviceID); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "device_id", deviceID, "err", err)
				}
				return
			}
		}
	}
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := defaultInterval

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// Helper: sendLatest writes the newest reading with a write deadline.
// A device without readings yields a "waiting" frame; other lookup
// errors close the stream.
func (h *Handler) sendLatest(ctx context.Context, conn *websocket.Conn, deviceID int64) error {
	env := wsEnvelope{Type: "tracking"}
	tr, err := h.services.Trackings.Latest(ctx, deviceID)
	switch {
	case err == nil:
		env.Data = tr
	case errors.Is(err, service.ErrNotFound):
		env.Type = "waiting"
	default:
		if h.log != nil {
			h.log.Errorw("ws_latest_tracking_failed", "device_id", deviceID, "err", err)
		}
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
