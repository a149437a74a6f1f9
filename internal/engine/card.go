package engine

// Card is an immutable development card. Its ownership moves between a deck,
// a visible slot, a player's reserve and a player's tableau; the value itself
// never changes after catalog load.
type Card struct {
	Key    string        `json:"key"`
	Tier   int           `json:"tier"`
	Gem    Token         `json:"gem"`
	Points int           `json:"points"`
	Price  map[Token]int `json:"price"` // gem tokens only, may be empty
}

// NoblePoints is the fixed prestige reward for acquiring any noble.
const NoblePoints = 3

// Noble is an immutable noble tile. Criteria name the bonus counts a player
// must have accrued from owned cards; gold never appears in them.
type Noble struct {
	Key      string        `json:"key"`
	Criteria map[Token]int `json:"criteria"`
	Points   int           `json:"points"`
}
