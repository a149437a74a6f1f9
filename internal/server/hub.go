package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"splendor/internal/engine"
	"splendor/internal/lobby"
	"splendor/internal/protocol"
	"splendor/internal/store"
)

const persistTimeout = 3 * time.Second

// Hub manages WebSocket connections and game state for one game room. The
// board is touched only from the Run goroutine, which serializes every turn.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	board      *engine.Board
	seats      map[string]int // player ID -> seat index
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	stopOnce   sync.Once
	store      *store.Store
	log        *zap.Logger
}

func NewHub(gameID string, lob *lobby.Lobby, st *store.Store, log *zap.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		seats:      make(map[string]int),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
		store:      st,
		log:        log.With(zap.String("game_id", gameID)),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			if h.board != nil {
				h.sendStateToClient(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			return
		}
	}
}

// Stop shuts the hub down. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgTurn:
		h.handleTurn(msg)
	case protocol.MsgCancelTurn:
		h.handleCancelTurn(msg)
	case protocol.MsgPause:
		h.handlePause(msg)
	default:
		h.sendError(msg.Client, "unknown message type")
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &join); err != nil {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	msg.Client.PlayerID = join.PlayerID
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if h.board != nil {
		h.sendError(msg.Client, "game already started")
		return
	}
	if !h.lobby.CanStart() {
		h.sendError(msg.Client, "not all players ready")
		return
	}
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	lobbyPlayers := h.lobby.GetPlayers()
	players := make([]*engine.Player, len(lobbyPlayers))
	for i, lp := range lobbyPlayers {
		players[i] = engine.NewPlayer(i, lp.Name)
		h.seats[lp.ID] = i
	}
	h.board = engine.NewBoard(players, engine.DefaultCatalog())
	h.log.Info("game started", zap.Int("players", len(players)))

	h.sendLobbyUpdate()
	h.broadcastState()
	h.persist()
}

func (h *Hub) handleTurn(msg IncomingMessage) {
	seat, ok := h.authorize(msg)
	if !ok {
		return
	}
	var tm protocol.TurnMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &tm); err != nil {
		h.sendError(msg.Client, "invalid turn message")
		return
	}
	turn, err := tm.Turn()
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	res := h.board.ExecuteTurn(turn)
	env := protocol.MustEnvelope(protocol.MsgTurnResult, protocol.FromCompletedTurn(res))
	msg.Client.SendEnvelope(env)

	if res.Err != nil {
		h.log.Debug("turn rejected",
			zap.Int("seat", seat),
			zap.String("kind", res.Err.Kind.String()))
		return
	}

	h.broadcastState()
	h.persist()

	if res.GameOver {
		h.announceWinner()
	}
}

func (h *Hub) handleCancelTurn(msg IncomingMessage) {
	if _, ok := h.authorize(msg); !ok {
		return
	}
	if !h.board.CancelPendingTurn() {
		h.sendError(msg.Client, "no pending turn to cancel")
		return
	}
	h.broadcastState()
	h.persist()
}

func (h *Hub) handlePause(msg IncomingMessage) {
	var pause protocol.PauseMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &pause); err != nil {
		h.sendError(msg.Client, "invalid pause message")
		return
	}
	if h.board == nil {
		h.sendError(msg.Client, "game not started")
		return
	}
	h.board.IsPaused = pause.Paused
	h.broadcastState()
}

// authorize resolves the sender to a seat and checks it is that seat's turn.
func (h *Hub) authorize(msg IncomingMessage) (int, bool) {
	if h.board == nil {
		h.sendError(msg.Client, "game not started")
		return 0, false
	}
	seat, ok := h.seats[msg.Client.PlayerID]
	if !ok {
		h.sendError(msg.Client, "not seated at this table")
		return 0, false
	}
	if seat != h.board.CurrentPlayer {
		h.sendError(msg.Client, "not your turn")
		return 0, false
	}
	return seat, true
}

func (h *Hub) announceWinner() {
	winner := h.board.Winner()
	if winner == nil {
		return
	}
	h.log.Info("game over",
		zap.String("winner", winner.Name),
		zap.Int("prestige", winner.Prestige))
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameOver, protocol.GameOverMsg{
		Winner:   winner.Name,
		Prestige: winner.Prestige,
	}))
}

func (h *Hub) broadcastState() {
	if h.board == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.board == nil {
		return
	}
	seat, seated := h.seats[client.PlayerID]
	if client.Type == ClientSpectator || !seated {
		env := protocol.MustEnvelope(protocol.MsgGameState, h.board.Snapshot())
		client.SendEnvelope(env)
		return
	}
	env := protocol.MustEnvelope(protocol.MsgPlayerState, h.board.SnapshotFor(seat))
	client.SendEnvelope(env)
}

func (h *Hub) persist() {
	if h.store == nil || h.board == nil {
		return
	}
	data, err := json.Marshal(h.board.Snapshot())
	if err != nil {
		h.log.Error("snapshot marshal failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := h.store.SaveSnapshot(ctx, h.gameID, h.board.Version, data); err != nil {
		h.log.Error("snapshot save failed",
			zap.Int("version", h.board.Version),
			zap.Error(err))
	}
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready}
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:  h.gameID,
		Players: lps,
		Started: h.lobby.Started,
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal failed", zap.Error(err))
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.log.Warn("client buffer full", zap.String("player_id", client.PlayerID))
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	client.SendEnvelope(env)
}
