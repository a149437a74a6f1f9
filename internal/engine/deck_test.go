package engine_test

import (
	"testing"

	"splendor/internal/engine"
)

func TestDeckDrawsEveryCardOnce(t *testing.T) {
	cards := engine.DefaultCatalog().TierCards(1)
	d := engine.NewDeck(1, cards)
	if d.Len() != len(cards) {
		t.Fatalf("deck length = %d, want %d", d.Len(), len(cards))
	}
	seen := make(map[string]bool)
	for i := 0; i < len(cards); i++ {
		c, ok := d.Draw()
		if !ok {
			t.Fatalf("draw %d failed with %d cards left", i, d.Len())
		}
		if seen[c.Key] {
			t.Fatalf("card %s drawn twice", c.Key)
		}
		seen[c.Key] = true
	}
	if _, ok := d.Draw(); ok {
		t.Fatal("draw from exhausted deck succeeded")
	}
	if d.Len() != 0 {
		t.Fatalf("exhausted deck reports length %d", d.Len())
	}
}

func TestDeckCopiesInput(t *testing.T) {
	cards := engine.DefaultCatalog().TierCards(2)
	d := engine.NewDeck(2, cards)
	cards[0] = engine.Card{}
	for d.Len() > 0 {
		c, _ := d.Draw()
		if c.Key == "" {
			t.Fatal("deck shares backing array with caller slice")
		}
	}
}
