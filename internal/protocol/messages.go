package protocol

import (
	"encoding/json"
	"fmt"

	"splendor/internal/engine"
)

// Envelope is the standard WebSocket message wrapper.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope creates an envelope with a JSON-encoded payload.
func NewEnvelope(typ string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// MustEnvelope is like NewEnvelope but panics on error.
func MustEnvelope(typ string, payload interface{}) Envelope {
	e, err := NewEnvelope(typ, payload)
	if err != nil {
		panic(err)
	}
	return e
}

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"
	MsgPlayerState = "player_state"
	MsgTurnResult  = "turn_result"
	MsgGameOver    = "game_over"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgJoin       = "join"
	MsgReady      = "ready"
	MsgStartGame  = "start_game"
	MsgTurn       = "turn"
	MsgCancelTurn = "cancel_turn"
	MsgPause      = "pause"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID  string        `json:"game_id"`
	Players []LobbyPlayer `json:"players"`
	Started bool          `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// PauseMsg toggles the board's paused flag.
type PauseMsg struct {
	Paused bool `json:"paused"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}

// TurnMsg is one player action as it crosses the wire. Token keys are plain
// strings here; Turn validates them against the engine's token set.
type TurnMsg struct {
	TokenDelta  map[string]int `json:"token_delta,omitempty"`
	PurchaseKey string         `json:"purchase_key,omitempty"`
	ReserveKey  string         `json:"reserve_key,omitempty"`
	ReserveTier int            `json:"reserve_tier,omitempty"`
	NobleKey    string         `json:"noble_key,omitempty"`
}

// Turn converts the wire form into an engine turn, rejecting unknown token
// names and out-of-range deck tiers before the engine sees them.
func (m TurnMsg) Turn() (*engine.Turn, error) {
	if m.ReserveTier < 0 || m.ReserveTier > 3 {
		return nil, fmt.Errorf("unknown deck tier %d", m.ReserveTier)
	}
	turn := &engine.Turn{
		PurchaseKey: m.PurchaseKey,
		ReserveKey:  m.ReserveKey,
		ReserveTier: m.ReserveTier,
		NobleKey:    m.NobleKey,
	}
	if m.TokenDelta != nil {
		turn.TokenDelta = make(map[engine.Token]int, len(m.TokenDelta))
		for name, v := range m.TokenDelta {
			tok := engine.Token(name)
			if !tok.Valid() {
				return nil, fmt.Errorf("unknown token %q", name)
			}
			turn.TokenDelta[tok] = v
		}
	}
	return turn, nil
}

// TurnResultMsg reports the outcome of one executed turn back to its sender.
type TurnResultMsg struct {
	Error          *TurnErrorMsg    `json:"error,omitempty"`
	Continuation   *ContinuationMsg `json:"continuation,omitempty"`
	ConsumedTokens map[string]int   `json:"consumed_tokens,omitempty"`
	GameOver       bool             `json:"game_over"`
}

type TurnErrorMsg struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ContinuationMsg struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Nobles  []engine.Noble `json:"nobles,omitempty"`
}

// FromCompletedTurn maps an engine result onto the wire form.
func FromCompletedTurn(res engine.CompletedTurn) TurnResultMsg {
	out := TurnResultMsg{GameOver: res.GameOver}
	if res.Err != nil {
		out.Error = &TurnErrorMsg{Kind: res.Err.Kind.String(), Message: res.Err.Message}
	}
	if res.Continuation != nil {
		out.Continuation = &ContinuationMsg{
			Code:    res.Continuation.Code,
			Message: res.Continuation.Message,
			Nobles:  res.Continuation.Nobles,
		}
	}
	if len(res.ConsumedTokens) > 0 {
		out.ConsumedTokens = make(map[string]int, len(res.ConsumedTokens))
		for tok, n := range res.ConsumedTokens {
			out.ConsumedTokens[string(tok)] = n
		}
	}
	return out
}

// GameOverMsg announces the final result to every client.
type GameOverMsg struct {
	Winner   string `json:"winner"`
	Prestige int    `json:"prestige"`
}
