package engine

// Turn is one player action submitted to the board. At most one of the
// action fields may be set. TokenDelta is special: negative entries mean
// "return to the supply", and a delta with no positive entry is the only
// turn allowed to stand alone while a continuation is pending -- it does not
// count as an action.
type Turn struct {
	TokenDelta  map[Token]int `json:"token_delta,omitempty"`
	PurchaseKey string        `json:"purchase_key,omitempty"`
	ReserveKey  string        `json:"reserve_key,omitempty"`
	ReserveTier int           `json:"reserve_tier,omitempty"` // 1-3, blind reservation
	NobleKey    string        `json:"noble_key,omitempty"`

	// Filled in by the board when the turn enters the history.
	PlayerName   string        `json:"player_name,omitempty"`
	Continuation *Continuation `json:"continuation,omitempty"`
}

// Continuation codes.
const (
	ContinueReturnTokens = 0
	ContinueChooseNoble  = 1
)

// Continuation is a suspended-turn result: the acting player owes exactly one
// more ExecuteTurn call (a pure token return, or a noble acquisition) before
// the seat advances.
type Continuation struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Nobles  []Noble `json:"nobles,omitempty"` // code 1: the qualifying nobles
}

// CompletedTurn is the result of one ExecuteTurn call.
type CompletedTurn struct {
	Err            *TurnError    `json:"error,omitempty"`
	Continuation   *Continuation `json:"continuation,omitempty"`
	ConsumedTokens map[Token]int `json:"consumed_tokens,omitempty"`
	GameOver       bool          `json:"game_over"`
}

// positiveDelta extracts the taking half of the token delta.
func (t *Turn) positiveDelta() map[Token]int {
	var pos map[Token]int
	for tok, v := range t.TokenDelta {
		if v > 0 {
			if pos == nil {
				pos = make(map[Token]int)
			}
			pos[tok] = v
		}
	}
	return pos
}

// actionCount counts the distinct actions present in the turn. A token delta
// counts only when at least one entry is positive.
func (t *Turn) actionCount() int {
	n := 0
	if len(t.positiveDelta()) > 0 {
		n++
	}
	if t.PurchaseKey != "" {
		n++
	}
	if t.ReserveKey != "" {
		n++
	}
	if t.ReserveTier != 0 {
		n++
	}
	if t.NobleKey != "" {
		n++
	}
	return n
}
