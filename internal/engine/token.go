package engine

// Token identifies the six token types. Gold is the wildcard: it covers a
// shortfall of any single gem during a purchase and can never be requested
// from the supply directly.
type Token string

const (
	Diamond  Token = "diamond"
	Sapphire Token = "sapphire"
	Emerald  Token = "emerald"
	Ruby     Token = "ruby"
	Onyx     Token = "onyx"
	Gold     Token = "gold"
)

// GemOrder returns the canonical ordering of the five gem types. Any logic
// whose outcome depends on iteration order (wildcard allocation, settlement)
// walks this slice instead of ranging over a map.
func GemOrder() []Token {
	return []Token{Diamond, Sapphire, Emerald, Ruby, Onyx}
}

// AllTokens returns the canonical gem order with Gold appended.
func AllTokens() []Token {
	return append(GemOrder(), Gold)
}

func (t Token) Valid() bool {
	switch t {
	case Diamond, Sapphire, Emerald, Ruby, Onyx, Gold:
		return true
	}
	return false
}

// IsGem reports whether t is one of the five gem types.
func (t Token) IsGem() bool {
	return t.Valid() && t != Gold
}

// NewTokenCounts allocates a zeroed ledger covering all six token types.
// Every owner gets its own map; ledgers are never shared.
func NewTokenCounts() map[Token]int {
	return map[Token]int{Diamond: 0, Sapphire: 0, Emerald: 0, Ruby: 0, Onyx: 0, Gold: 0}
}

// NewBonusCounts allocates a zeroed ledger covering the five gem types.
func NewBonusCounts() map[Token]int {
	return map[Token]int{Diamond: 0, Sapphire: 0, Emerald: 0, Ruby: 0, Onyx: 0}
}

func totalTokens(counts map[Token]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
