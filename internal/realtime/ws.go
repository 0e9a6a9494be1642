package realtime

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"tableside/internal/common/httpx"
	"tableside/internal/common/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Dashboards connect from whatever origin serves the admin UI; the
	// channel carries no credentials and CRUD access is authed separately.
	CheckOrigin: func(*http.Request) bool { return true },
}

// WSHandler upgrades GET /ws/{restaurantID} and streams that restaurant's
// snapshots until the peer goes away. There is no replay: clients fetch
// current state over HTTP first, then subscribe (fetch-then-subscribe).
func WSHandler(hub *Hub, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID := chi.URLParam(r, "restaurantID")
		if restaurantID == "" {
			httpx.WriteProblem(w, http.StatusBadRequest, "validation_error", "restaurant id is required")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			lg.Error("ws_upgrade_failed", err, "restaurant_id", restaurantID)
			return
		}

		sub := hub.Subscribe(restaurantID)
		lg.Info("ws_connected", "restaurant_id", restaurantID, "remote", conn.RemoteAddr().String())

		done := make(chan struct{})
		go readPump(conn, done)
		writePump(conn, sub, done)

		hub.Unsubscribe(sub)
		_ = conn.Close()
		lg.Info("ws_disconnected", "restaurant_id", restaurantID)
	}
}

// readPump discards inbound frames; it exists to notice closes and to keep
// the pong deadline fresh.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, sub *Subscriber, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-sub.C():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
