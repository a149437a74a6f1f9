package engine

import (
	"fmt"
	"math/rand/v2"
)

const (
	// VisibleSlots is the number of face-up cards per tier.
	VisibleSlots = 4
	// MaxTakeTypes is the most token types one take may cover.
	MaxTakeTypes = 3
	// MinSupplyForDouble: taking 2 of a type must leave at least 2 behind.
	MinSupplyForDouble = 4
)

// Board owns the shared game state and is the engine's single entry point.
// It performs no locking; callers must serialize ExecuteTurn calls per board
// instance.
type Board struct {
	Version       int             `json:"version"`
	Players       []*Player       `json:"players"`
	CurrentPlayer int             `json:"current_player"`
	Turns         []*Turn         `json:"-"` // newest first
	LastTurn      *Turn           `json:"-"`
	Decks         map[int]*Deck   `json:"-"`
	Visible       map[int][]*Card `json:"-"` // 4 slots per tier, nil = exhausted
	Supply        map[Token]int   `json:"supply"`
	Nobles        []Noble         `json:"nobles"`
	LastRound     bool            `json:"last_round"`
	GameOver      bool            `json:"game_over"`
	IsPaused      bool            `json:"is_paused"` // external concern, never consulted here
}

// NewBoard builds a board for the given seats, consuming the catalog once.
// Noble selection draws players+1 tiles at random from the full pool.
func NewBoard(players []*Player, catalog CatalogProvider) *Board {
	b := &Board{
		Players: players,
		Decks:   make(map[int]*Deck, 3),
		Visible: make(map[int][]*Card, 3),
		Supply:  make(map[Token]int, 6),
	}
	for tier := 1; tier <= 3; tier++ {
		b.Decks[tier] = NewDeck(tier, catalog.TierCards(tier))
		slots := make([]*Card, VisibleSlots)
		for i := range slots {
			if c, ok := b.Decks[tier].Draw(); ok {
				card := c
				slots[i] = &card
			}
		}
		b.Visible[tier] = slots
	}
	for t, n := range catalog.StartingSupply(len(players)) {
		b.Supply[t] = n
	}
	pool := catalog.Nobles()
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	count := len(players) + 1
	if count > len(pool) {
		count = len(pool)
	}
	b.Nobles = append([]Noble(nil), pool[:count]...)
	return b
}

// ExecuteTurn applies one player action. Validation precedes every mutation:
// a turn answered with an error left the board untouched. A continuation
// result suspends the turn; the seat advances only on continuation-free
// completion.
func (b *Board) ExecuteTurn(turn *Turn) CompletedTurn {
	if b.GameOver {
		return failed(ErrGameAlreadyOver, "the game has ended")
	}
	actions := turn.actionCount()
	if actions > 1 {
		return failed(ErrMultipleActions, "a turn may contain only one action")
	}
	if actions == 0 && turn.TokenDelta == nil {
		return failed(ErrNoAction, "turn contains no action")
	}
	switch {
	case turn.TokenDelta != nil:
		return b.handleTokens(turn)
	case turn.PurchaseKey != "":
		return b.handlePurchase(turn)
	case turn.ReserveKey != "" || turn.ReserveTier != 0:
		return b.handleReservation(turn)
	default:
		return b.handleNoble(turn)
	}
}

func (b *Board) handleTokens(turn *Turn) CompletedTurn {
	positive := turn.positiveDelta()
	if _, ok := positive[Gold]; ok {
		return failed(ErrDirectGoldTake, "gold tokens cannot be taken directly")
	}
	if len(positive) > MaxTakeTypes {
		return failed(ErrTooManyTokenTypes, "no more than 3 token types per take")
	}
	if len(positive) == 1 {
		for t, v := range positive {
			if v > 2 {
				return failed(ErrNotEnoughToTake, "no more than 2 tokens of one type")
			}
			if v == 2 && b.Supply[t] < MinSupplyForDouble {
				return failed(ErrNotEnoughToTake, "taking 2 must leave at least 2 in the supply")
			}
			if v == 1 && b.Supply[t] < 1 {
				return failed(ErrNotEnoughToTake, fmt.Sprintf("supply has no %s tokens left", t))
			}
		}
	} else if len(positive) > 1 {
		for t, v := range positive {
			if v != 1 {
				return failed(ErrNotEnoughToTake, "taking multiple types means exactly 1 of each")
			}
			if b.Supply[t] < 1 {
				return failed(ErrNotEnoughToTake, fmt.Sprintf("supply has no %s tokens left", t))
			}
		}
	}
	res := b.current().Apply(ResolvedTurn{TokenDelta: turn.TokenDelta}, b.Supply[Gold] > 0)
	if res.Err != nil {
		return CompletedTurn{Err: res.Err}
	}
	if res.Continuation != nil {
		b.recordSuspended(turn, res.Continuation)
		return CompletedTurn{Continuation: res.Continuation}
	}
	// The supply moves opposite to the player: takes drain it, returns refill it.
	for t, v := range turn.TokenDelta {
		b.Supply[t] -= v
	}
	return b.finalize(turn)
}

func (b *Board) handlePurchase(turn *Turn) CompletedTurn {
	player := b.current()
	card := player.reservedCard(turn.PurchaseKey)
	fromReserve := card != nil
	if card == nil {
		card = b.visibleCard(turn.PurchaseKey)
	}
	if card == nil {
		return failed(ErrCardUnavailable, "card is not available for purchase")
	}
	res := player.Apply(ResolvedTurn{Purchase: card}, b.Supply[Gold] > 0)
	if res.Err != nil {
		return CompletedTurn{Err: res.Err}
	}
	if !fromReserve {
		b.replaceVisible(*card)
	}
	for t, v := range res.ConsumedTokens {
		b.Supply[t] += v
	}
	out := b.finalize(turn)
	out.ConsumedTokens = res.ConsumedTokens
	return out
}

func (b *Board) handleReservation(turn *Turn) CompletedTurn {
	player := b.current()
	var card *Card
	visible := false
	if turn.ReserveTier != 0 {
		// Check the cap before drawing so a rejection leaves the deck intact.
		if len(player.Reserved) >= MaxReserved {
			return failed(ErrTooManyReserved, "only 3 cards may be reserved at a time")
		}
		drawn, ok := b.Decks[turn.ReserveTier].Draw()
		if !ok {
			return failed(ErrEmptyDeck, "cannot reserve from an empty deck")
		}
		card = &drawn
	} else {
		card = b.visibleCard(turn.ReserveKey)
		if card == nil {
			return failed(ErrCardUnavailable, "card is not available to reserve")
		}
		visible = true
	}
	res := player.Apply(ResolvedTurn{Reserve: card}, b.Supply[Gold] > 0)
	if res.Err != nil {
		return CompletedTurn{Err: res.Err}
	}
	// The gold grant commits even when a continuation follows; the
	// reservation is never rolled back.
	if b.Supply[Gold] > 0 {
		b.Supply[Gold]--
	}
	if visible {
		b.replaceVisible(*card)
	}
	if res.Continuation != nil {
		b.recordSuspended(turn, res.Continuation)
		return CompletedTurn{Continuation: res.Continuation}
	}
	return b.finalize(turn)
}

func (b *Board) handleNoble(turn *Turn) CompletedTurn {
	noble := b.pooledNoble(turn.NobleKey)
	if noble == nil {
		return failed(ErrCardUnavailable, "noble is not available")
	}
	res := b.current().Apply(ResolvedTurn{Noble: noble}, b.Supply[Gold] > 0)
	if res.Err != nil {
		return CompletedTurn{Err: res.Err}
	}
	b.removeNoble(noble.Key)
	return b.finalize(turn)
}

// finalize is the shared tail of every successful handler: noble scan,
// last-round bookkeeping, history recording, game-over check, seat advance.
func (b *Board) finalize(turn *Turn) CompletedTurn {
	player := b.current()
	if turn.NobleKey == "" {
		// A player who just took a noble is not offered another in the same
		// pass: one noble per turn.
		var qualifying []Noble
		for _, n := range b.Nobles {
			if player.QualifiesFor(&n) {
				qualifying = append(qualifying, n)
			}
		}
		if len(qualifying) > 0 {
			cont := &Continuation{
				Code:    ContinueChooseNoble,
				Message: "choose a noble to acquire",
				Nobles:  qualifying,
			}
			b.recordSuspended(turn, cont)
			return CompletedTurn{Continuation: cont}
		}
	}
	if player.Prestige >= WinningPrestige {
		b.LastRound = true
	}
	b.Version++
	turn.PlayerName = player.Name
	b.pushTurn(turn)
	if b.CurrentPlayer == len(b.Players)-1 && b.LastRound {
		b.GameOver = true
		return CompletedTurn{GameOver: true}
	}
	b.CurrentPlayer = (b.CurrentPlayer + 1) % len(b.Players)
	return CompletedTurn{}
}

// Winner returns the winning player once the game is over, nil before that.
// Highest prestige wins; ties break to the fewest owned cards, remaining
// ties to seat order.
func (b *Board) Winner() *Player {
	if !b.GameOver {
		return nil
	}
	var best *Player
	for _, p := range b.Players {
		if best == nil || p.Prestige > best.Prestige ||
			(p.Prestige == best.Prestige && len(p.Cards) < len(best.Cards)) {
			best = p
		}
	}
	return best
}

// CancelPendingTurn abandons the pending continuation, reversing the
// committed half of a suspended reservation (the card and the gold grant).
// Token continuations applied nothing, so only the history head is popped.
// Returns false when no continuation is pending.
func (b *Board) CancelPendingTurn() bool {
	if b.LastTurn == nil || b.LastTurn.Continuation == nil {
		return false
	}
	player := b.current()
	if b.LastTurn.ReserveKey != "" || b.LastTurn.ReserveTier != 0 {
		if n := len(player.Reserved); n > 0 {
			card := player.Reserved[n-1]
			player.Reserved = player.Reserved[:n-1]
			if player.Tokens[Gold] > 0 {
				player.Tokens[Gold]--
				b.Supply[Gold]++
			}
			b.restoreCard(card)
		}
	}
	b.Turns = b.Turns[1:]
	if len(b.Turns) > 0 {
		b.LastTurn = b.Turns[0]
	} else {
		b.LastTurn = nil
	}
	b.Version++
	return true
}

func (b *Board) current() *Player {
	return b.Players[b.CurrentPlayer]
}

func (b *Board) visibleCard(key string) *Card {
	for tier := 1; tier <= 3; tier++ {
		for _, c := range b.Visible[tier] {
			if c != nil && c.Key == key {
				return c
			}
		}
	}
	return nil
}

// replaceVisible refills the slot the card occupied from that tier's deck.
// The slot goes empty when the deck is exhausted.
func (b *Board) replaceVisible(card Card) {
	slots := b.Visible[card.Tier]
	for i, c := range slots {
		if c != nil && c.Key == card.Key {
			if drawn, ok := b.Decks[card.Tier].Draw(); ok {
				d := drawn
				slots[i] = &d
			} else {
				slots[i] = nil
			}
			return
		}
	}
}

// restoreCard puts a card back into an empty visible slot of its tier, or
// into the tier's deck when every slot is occupied.
func (b *Board) restoreCard(card Card) {
	slots := b.Visible[card.Tier]
	for i, c := range slots {
		if c == nil {
			restored := card
			slots[i] = &restored
			return
		}
	}
	b.Decks[card.Tier].put(card)
}

func (b *Board) pooledNoble(key string) *Noble {
	for i := range b.Nobles {
		if b.Nobles[i].Key == key {
			return &b.Nobles[i]
		}
	}
	return nil
}

func (b *Board) removeNoble(key string) {
	for i := range b.Nobles {
		if b.Nobles[i].Key == key {
			b.Nobles = append(b.Nobles[:i], b.Nobles[i+1:]...)
			return
		}
	}
}

// recordSuspended bumps the version and records a turn that ended in a
// continuation. The seat does not advance until the continuation resolves.
func (b *Board) recordSuspended(turn *Turn, cont *Continuation) {
	b.Version++
	turn.PlayerName = b.current().Name
	turn.Continuation = cont
	b.pushTurn(turn)
}

func (b *Board) pushTurn(turn *Turn) {
	b.Turns = append([]*Turn{turn}, b.Turns...)
	b.LastTurn = turn
}

func failed(kind ErrorKind, message string) CompletedTurn {
	return CompletedTurn{Err: newTurnError(kind, message)}
}
