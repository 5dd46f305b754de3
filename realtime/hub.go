package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Tariq-Monowar/timetree/logging"
)

// clientFrame is the only inbound message shape the hub understands. A client
// sends {"event":"register","userId":"..."} once after connecting.
type clientFrame struct {
	Event  string `json:"event"`
	UserID string `json:"userId"`
}

// serverFrame wraps every outbound push.
type serverFrame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub owns the WebSocket connections and the presence registry built from
// their register/disconnect lifecycle. Register and deregister run on the
// per-connection read loop; pushes come from request handlers, so connection
// state is guarded by a mutex.
type Hub struct {
	registry *PresenceRegistry

	mu       sync.Mutex
	conns    map[string]*websocket.Conn
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		registry: NewPresenceRegistry(),
		conns:    make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades the request and runs the connection's read loop until the
// peer disconnects. Every connection gets a fresh channel id; presence is only
// established once the client sends its register frame.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger.Warnf("WebSocket upgrade failed: %v", err)
		return
	}

	channelID := uuid.New().String()
	h.mu.Lock()
	h.conns[channelID] = conn
	h.mu.Unlock()

	logging.Logger.Infof("WebSocket connected, channel %s", channelID)
	h.readLoop(channelID, conn)
}

func (h *Hub) readLoop(channelID string, conn *websocket.Conn) {
	defer func() {
		h.registry.Deregister(channelID)
		h.mu.Lock()
		delete(h.conns, channelID)
		h.mu.Unlock()
		conn.Close()
		logging.Logger.Infof("WebSocket disconnected, channel %s", channelID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			logging.Logger.Warnf("Malformed frame on channel %s: %v", channelID, err)
			continue
		}

		if frame.Event == "register" && frame.UserID != "" {
			h.registry.Register(frame.UserID, channelID)
			logging.Logger.Infof("User %s registered on channel %s", frame.UserID, channelID)
		}
	}
}

// Resolve returns the channel currently bound to userID.
func (h *Hub) Resolve(userID string) (string, bool) {
	return h.registry.Resolve(userID)
}

// Push writes an event frame to the given channel. The caller treats failures
// as best-effort: a missing or dead channel is reported, never retried.
func (h *Hub) Push(channelID, event string, payload interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[channelID]
	if !ok {
		return errChannelGone{channelID}
	}
	return conn.WriteJSON(serverFrame{Event: event, Data: payload})
}

type errChannelGone struct{ channelID string }

func (e errChannelGone) Error() string {
	return "channel " + e.channelID + " is no longer connected"
}
