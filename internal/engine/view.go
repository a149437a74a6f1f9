package engine

// BoardView is the read-only snapshot a transport layer serializes for
// spectators: decks reduce to counts, other players' reserves to sizes.
type BoardView struct {
	Version       int             `json:"version"`
	Phase         string          `json:"phase"`
	CurrentPlayer int             `json:"current_player"`
	Supply        map[Token]int   `json:"supply"`
	DeckCounts    map[int]int     `json:"deck_counts"`
	Visible       map[int][]*Card `json:"visible"`
	Nobles        []Noble         `json:"nobles"`
	Players       []PlayerView    `json:"players"`
	LastRound     bool            `json:"last_round"`
	GameOver      bool            `json:"game_over"`
	IsPaused      bool            `json:"is_paused"`
	LastTurn      *Turn           `json:"last_turn,omitempty"`
	Winner        string          `json:"winner,omitempty"`
}

// PlayerView is the public face of one seat.
type PlayerView struct {
	Id            int           `json:"id"`
	Name          string        `json:"name"`
	Tokens        map[Token]int `json:"tokens"`
	Bonuses       map[Token]int `json:"bonuses"`
	Cards         []Card        `json:"cards"`
	ReservedCount int           `json:"reserved_count"`
	Nobles        []Noble       `json:"nobles"`
	Prestige      int           `json:"prestige"`
}

// SeatView extends BoardView with what only the seat's own player may see.
type SeatView struct {
	BoardView
	Reserved     []Card        `json:"reserved"`
	IsMyTurn     bool          `json:"is_my_turn"`
	Continuation *Continuation `json:"continuation,omitempty"`
}

// Snapshot returns the spectator view. Maps and slices are copied; mutating
// the view never touches the board.
func (b *Board) Snapshot() BoardView {
	v := BoardView{
		Version:       b.Version,
		Phase:         b.Phase().String(),
		CurrentPlayer: b.CurrentPlayer,
		Supply:        copyCounts(b.Supply),
		DeckCounts:    make(map[int]int, 3),
		Visible:       make(map[int][]*Card, 3),
		Nobles:        append([]Noble(nil), b.Nobles...),
		LastRound:     b.LastRound,
		GameOver:      b.GameOver,
		IsPaused:      b.IsPaused,
	}
	if b.LastTurn != nil {
		turn := *b.LastTurn
		if turn.TokenDelta != nil {
			turn.TokenDelta = copyCounts(turn.TokenDelta)
		}
		if turn.Continuation != nil {
			cont := *turn.Continuation
			cont.Nobles = append([]Noble(nil), cont.Nobles...)
			turn.Continuation = &cont
		}
		v.LastTurn = &turn
	}
	for tier := 1; tier <= 3; tier++ {
		v.DeckCounts[tier] = b.Decks[tier].Len()
		slots := make([]*Card, len(b.Visible[tier]))
		for i, c := range b.Visible[tier] {
			if c != nil {
				card := *c
				slots[i] = &card
			}
		}
		v.Visible[tier] = slots
	}
	for _, p := range b.Players {
		v.Players = append(v.Players, PlayerView{
			Id:            p.Id,
			Name:          p.Name,
			Tokens:        copyCounts(p.Tokens),
			Bonuses:       copyCounts(p.Bonuses),
			Cards:         append([]Card(nil), p.Cards...),
			ReservedCount: len(p.Reserved),
			Nobles:        append([]Noble(nil), p.Nobles...),
			Prestige:      p.Prestige,
		})
	}
	if w := b.Winner(); w != nil {
		v.Winner = w.Name
	}
	return v
}

// SnapshotFor returns the view for one seat: the spectator snapshot plus the
// seat's reserved cards and, when it is this seat that owes a continuation,
// the pending continuation.
func (b *Board) SnapshotFor(playerID int) SeatView {
	v := SeatView{BoardView: b.Snapshot()}
	for i, p := range b.Players {
		if p.Id != playerID {
			continue
		}
		v.Reserved = append([]Card(nil), p.Reserved...)
		v.IsMyTurn = i == b.CurrentPlayer && !b.GameOver
		if v.IsMyTurn && v.LastTurn != nil {
			v.Continuation = v.LastTurn.Continuation
		}
	}
	return v
}

func copyCounts(counts map[Token]int) map[Token]int {
	out := make(map[Token]int, len(counts))
	for t, c := range counts {
		out[t] = c
	}
	return out
}
