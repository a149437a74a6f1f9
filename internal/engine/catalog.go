package engine

import "fmt"

// CatalogProvider supplies the static game data a board consumes once at
// construction. The engine never calls it again afterwards.
type CatalogProvider interface {
	TierCards(tier int) []Card
	Nobles() []Noble
	StartingSupply(playerCount int) map[Token]int
}

// DefaultCatalog returns the built-in base-game catalog: 40/30/20 cards per
// tier and ten nobles.
func DefaultCatalog() CatalogProvider {
	return baseCatalog{}
}

type baseCatalog struct{}

func (baseCatalog) TierCards(tier int) []Card {
	var out []Card
	for _, c := range baseCards() {
		if c.Tier == tier {
			out = append(out, c)
		}
	}
	return out
}

func (baseCatalog) Nobles() []Noble {
	return baseNobles()
}

// StartingSupply follows player count: 2 players get 4 of each gem, 3 get 5,
// more get 7. Gold is always 5.
func (baseCatalog) StartingSupply(playerCount int) map[Token]int {
	gems := 7
	switch {
	case playerCount <= 2:
		gems = 4
	case playerCount == 3:
		gems = 5
	}
	supply := map[Token]int{Gold: 5}
	for _, t := range GemOrder() {
		supply[t] = gems
	}
	return supply
}

type price = map[Token]int

// baseCards builds the full development deck. Each call returns fresh
// values so boards never share price maps.
func baseCards() []Card {
	var cards []Card
	seq := map[int]int{}
	add := func(tier int, gem Token, points int, cost price) {
		seq[tier]++
		cards = append(cards, Card{
			Key:    fmt.Sprintf("%s-%d-%02d", gem, tier, seq[tier]),
			Tier:   tier,
			Gem:    gem,
			Points: points,
			Price:  cost,
		})
	}

	// Tier 1: eight cards per gem, one of them worth a point.
	add(1, Onyx, 0, price{Diamond: 1, Sapphire: 1, Emerald: 1, Ruby: 1})
	add(1, Onyx, 0, price{Diamond: 1, Sapphire: 2, Emerald: 1, Ruby: 1})
	add(1, Onyx, 0, price{Diamond: 2, Sapphire: 2, Ruby: 1})
	add(1, Onyx, 0, price{Emerald: 1, Ruby: 3, Onyx: 1})
	add(1, Onyx, 0, price{Emerald: 2, Ruby: 1})
	add(1, Onyx, 0, price{Diamond: 2, Emerald: 2})
	add(1, Onyx, 0, price{Emerald: 3})
	add(1, Onyx, 1, price{Sapphire: 4})

	add(1, Sapphire, 0, price{Diamond: 1, Emerald: 1, Ruby: 1, Onyx: 1})
	add(1, Sapphire, 0, price{Diamond: 1, Emerald: 1, Ruby: 2, Onyx: 1})
	add(1, Sapphire, 0, price{Diamond: 1, Emerald: 2, Ruby: 2})
	add(1, Sapphire, 0, price{Sapphire: 1, Emerald: 3, Ruby: 1})
	add(1, Sapphire, 0, price{Diamond: 1, Onyx: 2})
	add(1, Sapphire, 0, price{Emerald: 2, Onyx: 2})
	add(1, Sapphire, 0, price{Onyx: 3})
	add(1, Sapphire, 1, price{Ruby: 4})

	add(1, Diamond, 0, price{Sapphire: 1, Emerald: 1, Ruby: 1, Onyx: 1})
	add(1, Diamond, 0, price{Sapphire: 1, Emerald: 2, Ruby: 1, Onyx: 1})
	add(1, Diamond, 0, price{Sapphire: 2, Emerald: 2, Onyx: 1})
	add(1, Diamond, 0, price{Diamond: 3, Sapphire: 1, Onyx: 1})
	add(1, Diamond, 0, price{Ruby: 2, Onyx: 1})
	add(1, Diamond, 0, price{Sapphire: 2, Onyx: 2})
	add(1, Diamond, 0, price{Sapphire: 3})
	add(1, Diamond, 1, price{Emerald: 4})

	add(1, Emerald, 0, price{Diamond: 1, Sapphire: 1, Ruby: 1, Onyx: 1})
	add(1, Emerald, 0, price{Diamond: 1, Sapphire: 1, Ruby: 1, Onyx: 2})
	add(1, Emerald, 0, price{Sapphire: 1, Ruby: 2, Onyx: 2})
	add(1, Emerald, 0, price{Diamond: 1, Sapphire: 3, Emerald: 1})
	add(1, Emerald, 0, price{Diamond: 2, Sapphire: 1})
	add(1, Emerald, 0, price{Sapphire: 2, Ruby: 2})
	add(1, Emerald, 0, price{Ruby: 3})
	add(1, Emerald, 1, price{Onyx: 4})

	add(1, Ruby, 0, price{Diamond: 1, Sapphire: 1, Emerald: 1, Onyx: 1})
	add(1, Ruby, 0, price{Diamond: 2, Sapphire: 1, Emerald: 1, Onyx: 1})
	add(1, Ruby, 0, price{Diamond: 2, Emerald: 1, Onyx: 2})
	add(1, Ruby, 0, price{Diamond: 1, Ruby: 1, Onyx: 3})
	add(1, Ruby, 0, price{Sapphire: 2, Emerald: 1})
	add(1, Ruby, 0, price{Diamond: 2, Ruby: 2})
	add(1, Ruby, 0, price{Diamond: 3})
	add(1, Ruby, 1, price{Diamond: 4})

	// Tier 2: six cards per gem, points 1 through 3.
	add(2, Onyx, 1, price{Diamond: 3, Sapphire: 2, Emerald: 2})
	add(2, Onyx, 1, price{Diamond: 3, Emerald: 3, Onyx: 2})
	add(2, Onyx, 2, price{Sapphire: 1, Emerald: 4, Ruby: 2})
	add(2, Onyx, 2, price{Emerald: 5, Ruby: 3})
	add(2, Onyx, 2, price{Diamond: 5})
	add(2, Onyx, 3, price{Onyx: 6})

	add(2, Sapphire, 1, price{Sapphire: 2, Emerald: 2, Ruby: 3})
	add(2, Sapphire, 1, price{Sapphire: 2, Emerald: 3, Onyx: 3})
	add(2, Sapphire, 2, price{Diamond: 5, Sapphire: 3})
	add(2, Sapphire, 2, price{Diamond: 2, Ruby: 1, Onyx: 4})
	add(2, Sapphire, 2, price{Sapphire: 5})
	add(2, Sapphire, 3, price{Sapphire: 6})

	add(2, Diamond, 1, price{Emerald: 3, Ruby: 2, Onyx: 2})
	add(2, Diamond, 1, price{Diamond: 2, Sapphire: 3, Ruby: 3})
	add(2, Diamond, 2, price{Emerald: 1, Ruby: 4, Onyx: 2})
	add(2, Diamond, 2, price{Ruby: 5, Onyx: 3})
	add(2, Diamond, 2, price{Ruby: 5})
	add(2, Diamond, 3, price{Diamond: 6})

	add(2, Emerald, 1, price{Diamond: 3, Emerald: 2, Ruby: 3})
	add(2, Emerald, 1, price{Diamond: 2, Sapphire: 3, Onyx: 2})
	add(2, Emerald, 2, price{Diamond: 4, Sapphire: 2, Onyx: 1})
	add(2, Emerald, 2, price{Sapphire: 5, Emerald: 3})
	add(2, Emerald, 2, price{Emerald: 5})
	add(2, Emerald, 3, price{Emerald: 6})

	add(2, Ruby, 1, price{Diamond: 2, Ruby: 2, Onyx: 3})
	add(2, Ruby, 1, price{Sapphire: 3, Ruby: 2, Onyx: 3})
	add(2, Ruby, 2, price{Diamond: 1, Sapphire: 4, Emerald: 2})
	add(2, Ruby, 2, price{Diamond: 3, Onyx: 5})
	add(2, Ruby, 2, price{Onyx: 5})
	add(2, Ruby, 3, price{Ruby: 6})

	// Tier 3: four cards per gem, points 3 through 5.
	add(3, Onyx, 3, price{Diamond: 3, Sapphire: 3, Emerald: 5, Ruby: 3})
	add(3, Onyx, 4, price{Ruby: 7})
	add(3, Onyx, 4, price{Emerald: 3, Ruby: 6, Onyx: 3})
	add(3, Onyx, 5, price{Ruby: 7, Onyx: 3})

	add(3, Sapphire, 3, price{Diamond: 3, Emerald: 3, Ruby: 3, Onyx: 5})
	add(3, Sapphire, 4, price{Diamond: 7})
	add(3, Sapphire, 4, price{Diamond: 6, Sapphire: 3, Onyx: 3})
	add(3, Sapphire, 5, price{Diamond: 7, Sapphire: 3})

	add(3, Diamond, 3, price{Sapphire: 3, Emerald: 3, Ruby: 5, Onyx: 3})
	add(3, Diamond, 4, price{Onyx: 7})
	add(3, Diamond, 4, price{Diamond: 3, Ruby: 3, Onyx: 6})
	add(3, Diamond, 5, price{Diamond: 3, Onyx: 7})

	add(3, Emerald, 3, price{Diamond: 5, Sapphire: 3, Ruby: 3, Onyx: 3})
	add(3, Emerald, 4, price{Sapphire: 7})
	add(3, Emerald, 4, price{Diamond: 3, Sapphire: 6, Emerald: 3})
	add(3, Emerald, 5, price{Sapphire: 7, Emerald: 3})

	add(3, Ruby, 3, price{Diamond: 3, Sapphire: 5, Emerald: 3, Onyx: 3})
	add(3, Ruby, 4, price{Emerald: 7})
	add(3, Ruby, 4, price{Sapphire: 3, Emerald: 6, Ruby: 3})
	add(3, Ruby, 5, price{Emerald: 7, Ruby: 3})

	return cards
}

// baseNobles builds the ten noble tiles.
func baseNobles() []Noble {
	noble := func(key string, criteria map[Token]int) Noble {
		return Noble{Key: key, Criteria: criteria, Points: NoblePoints}
	}
	return []Noble{
		noble("mary-stuart", map[Token]int{Emerald: 4, Ruby: 4}),
		noble("charles-v", map[Token]int{Diamond: 3, Ruby: 3, Onyx: 3}),
		noble("machiavelli", map[Token]int{Diamond: 4, Sapphire: 4}),
		noble("isabella-of-castile", map[Token]int{Diamond: 4, Onyx: 4}),
		noble("suleiman-the-magnificent", map[Token]int{Sapphire: 4, Emerald: 4}),
		noble("catherine-of-medici", map[Token]int{Sapphire: 3, Emerald: 3, Ruby: 3}),
		noble("anne-of-brittany", map[Token]int{Diamond: 3, Sapphire: 3, Emerald: 3}),
		noble("henry-viii", map[Token]int{Ruby: 4, Onyx: 4}),
		noble("elisabeth-of-austria", map[Token]int{Diamond: 3, Sapphire: 3, Onyx: 3}),
		noble("francis-i", map[Token]int{Emerald: 3, Ruby: 3, Onyx: 3}),
	}
}
