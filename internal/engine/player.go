package engine

import "fmt"

const (
	// MaxTokens is the most tokens a player may hold at the end of a turn.
	MaxTokens = 10
	// MaxReserved is the reserved-card cap; the 4th reservation is rejected.
	MaxReserved = 3
	// WinningPrestige triggers the last round once any player reaches it.
	WinningPrestige = 15
)

// Player owns one seat's ledger. It is mutated only through Apply; the board
// resolves card and noble references before calling it.
type Player struct {
	Id       int           `json:"id"`
	Name     string        `json:"name"`
	Tokens   map[Token]int `json:"tokens"`
	Cards    []Card        `json:"cards"`
	Bonuses  map[Token]int `json:"bonuses"`
	Reserved []Card        `json:"reserved"`
	Nobles   []Noble       `json:"nobles"`
	Prestige int           `json:"prestige"`
}

func NewPlayer(id int, name string) *Player {
	return &Player{
		Id:      id,
		Name:    name,
		Tokens:  NewTokenCounts(),
		Bonuses: NewBonusCounts(),
	}
}

// ResolvedTurn is a turn whose references the board has already resolved
// against its own state. Exactly one field is set.
type ResolvedTurn struct {
	TokenDelta map[Token]int
	Purchase   *Card
	Reserve    *Card
	Noble      *Noble
}

// LocalResult is the player-side outcome of applying one action.
type LocalResult struct {
	Err            *TurnError
	Continuation   *Continuation
	ConsumedTokens map[Token]int
}

// Apply executes one action against the player's ledger. goldAvailable
// reports whether the board can grant a gold token for a reservation.
func (p *Player) Apply(turn ResolvedTurn, goldAvailable bool) LocalResult {
	switch {
	case turn.TokenDelta != nil:
		return p.applyTokenDelta(turn.TokenDelta)
	case turn.Purchase != nil:
		return p.applyPurchase(turn.Purchase)
	case turn.Reserve != nil:
		return p.applyReserve(turn.Reserve, goldAvailable)
	case turn.Noble != nil:
		return p.applyNoble(turn.Noble)
	}
	return LocalResult{Err: newTurnError(ErrNoAction, "turn contains no action")}
}

func (p *Player) applyTokenDelta(delta map[Token]int) LocalResult {
	sum := 0
	for _, v := range delta {
		sum += v
	}
	if sum > 0 {
		// Taking: refuse before touching the ledger when the cap would be
		// exceeded. The player owes a return first.
		if over := p.TokenCount() + sum - MaxTokens; over > 0 {
			return LocalResult{Continuation: returnTokensContinuation(over)}
		}
	}
	for _, t := range AllTokens() {
		if delta[t] < 0 && p.Tokens[t] < -delta[t] {
			return LocalResult{Err: newTurnError(ErrInsufficientTokensToReturn,
				fmt.Sprintf("not enough %s tokens to return", t))}
		}
	}
	for t, v := range delta {
		p.Tokens[t] += v
	}
	// Only reachable when a return left the player above the cap.
	if over := p.TokenCount() - MaxTokens; over > 0 {
		return LocalResult{Continuation: returnTokensContinuation(over)}
	}
	return LocalResult{}
}

func (p *Player) applyPurchase(card *Card) LocalResult {
	if !p.CanAfford(card) {
		return LocalResult{Err: newTurnError(ErrInsufficientFunds,
			"not enough tokens for this card")}
	}
	consumed := make(map[Token]int)
	for _, t := range GemOrder() {
		needed := card.Price[t] - p.Bonuses[t]
		if needed <= 0 {
			continue
		}
		if needed > p.Tokens[t] {
			gold := needed - p.Tokens[t]
			p.Tokens[Gold] -= gold
			consumed[Gold] += gold
			needed = p.Tokens[t]
		}
		p.Tokens[t] -= needed
		if needed > 0 {
			consumed[t] = needed
		}
	}
	// card may point into Reserved; copy before removeReserved shifts it.
	bought := *card
	p.removeReserved(bought.Key)
	p.Cards = append(p.Cards, bought)
	p.Bonuses[bought.Gem]++
	p.Prestige += bought.Points
	return LocalResult{ConsumedTokens: consumed}
}

func (p *Player) applyReserve(card *Card, goldAvailable bool) LocalResult {
	if len(p.Reserved) >= MaxReserved {
		return LocalResult{Err: newTurnError(ErrTooManyReserved,
			"only 3 cards may be reserved at a time")}
	}
	p.Reserved = append(p.Reserved, *card)
	if goldAvailable {
		p.Tokens[Gold]++
	}
	// The reservation and the gold grant stay committed; the player owes a
	// token return before the turn can finish.
	if over := p.TokenCount() - MaxTokens; over > 0 {
		return LocalResult{Continuation: returnTokensContinuation(over)}
	}
	return LocalResult{}
}

func (p *Player) applyNoble(noble *Noble) LocalResult {
	if !p.QualifiesFor(noble) {
		return LocalResult{Err: newTurnError(ErrNobleCriteriaUnmet,
			"not enough bonuses for this noble")}
	}
	p.Nobles = append(p.Nobles, *noble)
	p.Prestige += noble.Points
	return LocalResult{}
}

// CanAfford reports whether bonuses plus tokens, with gold as overflow,
// cover the card's price.
func (p *Player) CanAfford(card *Card) bool {
	gold := p.Tokens[Gold]
	for _, t := range GemOrder() {
		short := card.Price[t] - p.Bonuses[t] - p.Tokens[t]
		if short > 0 {
			gold -= short
			if gold < 0 {
				return false
			}
		}
	}
	return true
}

// QualifiesFor reports whether the player's bonus counts meet every one of
// the noble's criteria.
func (p *Player) QualifiesFor(noble *Noble) bool {
	for t, req := range noble.Criteria {
		if p.Bonuses[t] < req {
			return false
		}
	}
	return true
}

// TokenCount returns the player's total token count, gold included.
func (p *Player) TokenCount() int {
	return totalTokens(p.Tokens)
}

// HasReserved reports whether a card with the given key sits in the reserve.
func (p *Player) HasReserved(key string) bool {
	return p.reservedCard(key) != nil
}

func (p *Player) reservedCard(key string) *Card {
	for i := range p.Reserved {
		if p.Reserved[i].Key == key {
			return &p.Reserved[i]
		}
	}
	return nil
}

func (p *Player) removeReserved(key string) {
	for i := range p.Reserved {
		if p.Reserved[i].Key == key {
			p.Reserved = append(p.Reserved[:i], p.Reserved[i+1:]...)
			return
		}
	}
}

func returnTokensContinuation(over int) *Continuation {
	return &Continuation{
		Code:    ContinueReturnTokens,
		Message: fmt.Sprintf("return %d tokens", over),
	}
}
