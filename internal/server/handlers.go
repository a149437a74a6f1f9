package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"splendor/internal/lobby"
	qr "splendor/internal/qrcode"
	"splendor/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager
	Store    *store.Store
	Log      *zap.Logger

	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHandlers(st *store.Store, log *zap.Logger) *Handlers {
	return &Handlers{
		LobbyMgr: lobby.NewManager(log),
		Store:    st,
		Log:      log,
		hubs:     make(map[string]*Hub),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// HandleHealth reports liveness.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleCreateGame creates a new game lobby and returns its ID.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.LobbyMgr.Create()
	lob := h.LobbyMgr.Get(gameID)
	hub := NewHub(gameID, lob, h.Store, h.Log)

	h.mu.Lock()
	h.hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()

	writeJSON(w, http.StatusOK, map[string]string{"game_id": gameID})
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	url := fmt.Sprintf("http://%s/join?game=%s", r.Host, gameID)
	png, err := qr.Generate(url, 0)
	if err != nil {
		h.Log.Error("qr generation failed", zap.String("game_id", gameID), zap.Error(err))
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"player_id": GeneratePlayerID()})
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	playerID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "spectator" or "player"

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	hub, ok := h.hubs[gameID]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	ct := ClientPlayer
	if clientType == "spectator" {
		ct = ClientSpectator
	}

	client := NewClient(hub, conn, playerID, ct)
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// DropGame tears down the hub for a removed lobby. Used by the stale-lobby
// cleanup loop.
func (h *Handlers) DropGame(gameID string) {
	h.mu.Lock()
	hub, ok := h.hubs[gameID]
	if ok {
		delete(h.hubs, gameID)
	}
	h.mu.Unlock()
	if ok {
		hub.Stop()
		h.Log.Info("game room dropped", zap.String("game_id", gameID))
	}
}
