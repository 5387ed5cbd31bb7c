package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/user/seo-report/internal/view"
)

const writeWait = 10 * time.Second

// HandleWebsocket serves GET /ws: it streams the session's region updates,
// starting with the state accumulated so far.
func (h *Handler) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	id, v := h.sessions.Get(sessionID(r))
	header := http.Header{}
	header.Add("Set-Cookie", sessionCookie(r, id).String())

	conn, err := h.upgrader.Upgrade(w, r, header)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	logger := h.logger.With(zap.String("session", id))
	logger.Debug("websocket connected")

	state, updates, unsubscribe := v.Page().Attach()
	defer unsubscribe()

	closed := make(chan struct{})
	go readLoop(conn, closed)

	for _, u := range state {
		if err := writeUpdate(conn, u); err != nil {
			logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}

	ping := time.NewTicker(h.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			logger.Debug("websocket closed by client")
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := writeUpdate(conn, u); err != nil {
				logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-ping.C:
			v.Touch()
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.Debug("websocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

func writeUpdate(conn *websocket.Conn, u view.Update) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(u)
}

// readLoop discards client messages so control frames are processed, and
// closes done when the connection ends.
func readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
