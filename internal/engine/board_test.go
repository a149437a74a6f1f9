package engine_test

import (
	"fmt"
	"testing"

	"splendor/internal/engine"
)

func newGame(t *testing.T, seats int) *engine.Board {
	t.Helper()
	players := make([]*engine.Player, seats)
	for i := range players {
		players[i] = engine.NewPlayer(i, fmt.Sprintf("player-%d", i+1))
	}
	return engine.NewBoard(players, engine.DefaultCatalog())
}

func take(delta map[engine.Token]int) *engine.Turn {
	return &engine.Turn{TokenDelta: delta}
}

func TestNewBoardSetup(t *testing.T) {
	b := newGame(t, 2)
	for tier := 1; tier <= 3; tier++ {
		for slot, c := range b.Visible[tier] {
			if c == nil {
				t.Errorf("tier %d slot %d empty on a fresh board", tier, slot)
			}
		}
	}
	if b.Decks[1].Len() != 36 || b.Decks[2].Len() != 26 || b.Decks[3].Len() != 16 {
		t.Errorf("deck sizes %d/%d/%d after dealing",
			b.Decks[1].Len(), b.Decks[2].Len(), b.Decks[3].Len())
	}
	if len(b.Nobles) != 3 {
		t.Errorf("%d nobles drawn for 2 players, want 3", len(b.Nobles))
	}
	if b.Supply[engine.Gold] != 5 || b.Supply[engine.Ruby] != 4 {
		t.Errorf("supply %v", b.Supply)
	}
	if b.Phase() != engine.PhaseInProgress {
		t.Errorf("fresh board phase %s", b.Phase())
	}
}

func TestTakeThreeDifferentTokens(t *testing.T) {
	b := newGame(t, 2)
	res := b.ExecuteTurn(take(map[engine.Token]int{
		engine.Diamond: 1, engine.Sapphire: 1, engine.Emerald: 1,
	}))
	if res.Err != nil {
		t.Fatalf("take failed: %v", res.Err)
	}
	want := map[engine.Token]int{
		engine.Diamond: 3, engine.Sapphire: 3, engine.Emerald: 3,
		engine.Ruby: 4, engine.Onyx: 4, engine.Gold: 5,
	}
	for tok, n := range want {
		if b.Supply[tok] != n {
			t.Errorf("supply %s = %d, want %d", tok, b.Supply[tok], n)
		}
	}
	if b.Players[0].TokenCount() != 3 {
		t.Errorf("player holds %d tokens", b.Players[0].TokenCount())
	}
	if b.CurrentPlayer != 1 {
		t.Errorf("current player %d, want 1", b.CurrentPlayer)
	}
	if b.Version != 1 {
		t.Errorf("version %d after one turn", b.Version)
	}
}

func TestDoubleTakeNeedsFourInSupply(t *testing.T) {
	b := newGame(t, 2)
	if res := b.ExecuteTurn(take(map[engine.Token]int{engine.Ruby: 2})); res.Err != nil {
		t.Fatalf("double take from 4 failed: %v", res.Err)
	}
	if b.Supply[engine.Ruby] != 2 {
		t.Fatalf("supply ruby = %d, want 2", b.Supply[engine.Ruby])
	}

	res := b.ExecuteTurn(take(map[engine.Token]int{engine.Ruby: 2}))
	if res.Err == nil || res.Err.Kind != engine.ErrNotEnoughToTake {
		t.Fatalf("got %v, want NotEnoughToTake", res.Err)
	}
	if b.Supply[engine.Ruby] != 2 || b.CurrentPlayer != 1 || b.Version != 1 {
		t.Fatal("rejected take mutated the board")
	}
}

func TestTakeValidation(t *testing.T) {
	cases := []struct {
		name  string
		delta map[engine.Token]int
		kind  engine.ErrorKind
	}{
		{"gold directly", map[engine.Token]int{engine.Gold: 1}, engine.ErrDirectGoldTake},
		{"four types", map[engine.Token]int{
			engine.Diamond: 1, engine.Sapphire: 1, engine.Emerald: 1, engine.Ruby: 1,
		}, engine.ErrTooManyTokenTypes},
		{"three of one type", map[engine.Token]int{engine.Ruby: 3}, engine.ErrNotEnoughToTake},
		{"two plus one", map[engine.Token]int{
			engine.Ruby: 2, engine.Onyx: 1,
		}, engine.ErrNotEnoughToTake},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newGame(t, 2)
			res := b.ExecuteTurn(take(tc.delta))
			if res.Err == nil || res.Err.Kind != tc.kind {
				t.Fatalf("got %v, want %s", res.Err, tc.kind)
			}
			if b.Version != 0 || b.Players[0].TokenCount() != 0 {
				t.Fatal("rejected take mutated the board")
			}
		})
	}
}

func TestTakeFromDrainedSupply(t *testing.T) {
	b := newGame(t, 2)
	b.Supply[engine.Onyx] = 0
	res := b.ExecuteTurn(take(map[engine.Token]int{engine.Onyx: 1, engine.Ruby: 1}))
	if res.Err == nil || res.Err.Kind != engine.ErrNotEnoughToTake {
		t.Fatalf("got %v, want NotEnoughToTake", res.Err)
	}

	res = b.ExecuteTurn(take(map[engine.Token]int{engine.Onyx: 1}))
	if res.Err == nil || res.Err.Kind != engine.ErrNotEnoughToTake {
		t.Fatalf("single take got %v, want NotEnoughToTake", res.Err)
	}
	if b.Supply[engine.Onyx] != 0 {
		t.Fatalf("supply onyx = %d after rejected takes", b.Supply[engine.Onyx])
	}
}

func TestMultipleActionsAndNoAction(t *testing.T) {
	b := newGame(t, 2)
	res := b.ExecuteTurn(&engine.Turn{
		TokenDelta:  map[engine.Token]int{engine.Ruby: 1},
		PurchaseKey: "whatever",
	})
	if res.Err == nil || res.Err.Kind != engine.ErrMultipleActions {
		t.Fatalf("got %v, want MultipleActions", res.Err)
	}
	res = b.ExecuteTurn(&engine.Turn{})
	if res.Err == nil || res.Err.Kind != engine.ErrNoAction {
		t.Fatalf("got %v, want NoAction", res.Err)
	}
}

func TestGameAlreadyOver(t *testing.T) {
	b := newGame(t, 2)
	b.GameOver = true
	res := b.ExecuteTurn(take(map[engine.Token]int{engine.Ruby: 1}))
	if res.Err == nil || res.Err.Kind != engine.ErrGameAlreadyOver {
		t.Fatalf("got %v, want GameAlreadyOver", res.Err)
	}
}

func TestReturnWithoutHoldings(t *testing.T) {
	b := newGame(t, 2)
	res := b.ExecuteTurn(take(map[engine.Token]int{engine.Ruby: -1}))
	if res.Err == nil || res.Err.Kind != engine.ErrInsufficientTokensToReturn {
		t.Fatalf("got %v, want InsufficientTokensToReturn", res.Err)
	}
}

func TestTakeOverflowContinuation(t *testing.T) {
	b := newGame(t, 2)
	p := b.Players[0]
	p.Tokens[engine.Diamond] = 4
	p.Tokens[engine.Ruby] = 4

	res := b.ExecuteTurn(take(map[engine.Token]int{
		engine.Sapphire: 1, engine.Emerald: 1, engine.Onyx: 1,
	}))
	if res.Err != nil {
		t.Fatalf("take failed: %v", res.Err)
	}
	if res.Continuation == nil || res.Continuation.Code != engine.ContinueReturnTokens {
		t.Fatalf("got %+v, want code-0 continuation", res)
	}
	if p.TokenCount() != 8 || b.Supply[engine.Sapphire] != 4 {
		t.Fatal("suspended take moved tokens")
	}
	if b.CurrentPlayer != 0 {
		t.Fatal("seat advanced while suspended")
	}
	if b.Version != 1 {
		t.Fatalf("version %d, continuations must bump it", b.Version)
	}
	if b.Phase() != engine.PhaseAwaitingReturn {
		t.Fatalf("phase %s, want AwaitingReturn", b.Phase())
	}

	res = b.ExecuteTurn(take(map[engine.Token]int{engine.Diamond: -1}))
	if res.Err != nil || res.Continuation != nil {
		t.Fatalf("pure return did not resolve: %+v", res)
	}
	if p.TokenCount() != 7 || b.Supply[engine.Diamond] != 5 {
		t.Fatal("return not settled against the supply")
	}
	if b.CurrentPlayer != 1 || b.Phase() != engine.PhaseInProgress {
		t.Fatal("seat did not advance after the return")
	}
}

func TestReserveVisibleCard(t *testing.T) {
	b := newGame(t, 2)
	key := b.Visible[2][0].Key
	res := b.ExecuteTurn(&engine.Turn{ReserveKey: key})
	if res.Err != nil {
		t.Fatalf("reserve failed: %v", res.Err)
	}
	p := b.Players[0]
	if !p.HasReserved(key) {
		t.Fatal("card not in the reserve")
	}
	if p.Tokens[engine.Gold] != 1 || b.Supply[engine.Gold] != 4 {
		t.Fatalf("gold grant: player %d supply %d",
			p.Tokens[engine.Gold], b.Supply[engine.Gold])
	}
	if slot := b.Visible[2][0]; slot == nil || slot.Key == key {
		t.Fatal("vacated slot not refilled from the deck")
	}
	if b.Decks[2].Len() != 25 {
		t.Fatalf("tier 2 deck has %d cards, want 25", b.Decks[2].Len())
	}
	if b.CurrentPlayer != 1 {
		t.Fatal("seat did not advance")
	}
}

func TestReserveBlindFromDeck(t *testing.T) {
	b := newGame(t, 2)
	res := b.ExecuteTurn(&engine.Turn{ReserveTier: 3})
	if res.Err != nil {
		t.Fatalf("blind reserve failed: %v", res.Err)
	}
	p := b.Players[0]
	if len(p.Reserved) != 1 || p.Reserved[0].Tier != 3 {
		t.Fatalf("reserve %v after blind draw", p.Reserved)
	}
	if b.Decks[3].Len() != 15 {
		t.Fatalf("tier 3 deck has %d cards, want 15", b.Decks[3].Len())
	}
}

func TestReserveFourthRejected(t *testing.T) {
	b := newGame(t, 2)
	p := b.Players[0]
	for i := 0; i < engine.MaxReserved; i++ {
		p.Reserved = append(p.Reserved, engine.Card{Key: fmt.Sprintf("held-%d", i), Tier: 1})
	}
	before := b.Decks[1].Len()
	res := b.ExecuteTurn(&engine.Turn{ReserveTier: 1})
	if res.Err == nil || res.Err.Kind != engine.ErrTooManyReserved {
		t.Fatalf("got %v, want TooManyReserved", res.Err)
	}
	if b.Decks[1].Len() != before {
		t.Fatal("rejected blind reserve consumed a card")
	}
}

func TestReserveFromEmptyDeck(t *testing.T) {
	b := newGame(t, 2)
	b.Decks[1] = engine.NewDeck(1, nil)
	res := b.ExecuteTurn(&engine.Turn{ReserveTier: 1})
	if res.Err == nil || res.Err.Kind != engine.ErrEmptyDeck {
		t.Fatalf("got %v, want EmptyDeck", res.Err)
	}
}

func TestReserveAtTenTokensSuspends(t *testing.T) {
	b := newGame(t, 2)
	p := b.Players[0]
	p.Tokens[engine.Diamond] = 5
	p.Tokens[engine.Ruby] = 5
	key := b.Visible[1][0].Key

	res := b.ExecuteTurn(&engine.Turn{ReserveKey: key})
	if res.Continuation == nil || res.Continuation.Code != engine.ContinueReturnTokens {
		t.Fatalf("got %+v, want code-0 continuation", res)
	}
	// The reservation and the gold grant stay committed.
	if !p.HasReserved(key) || p.TokenCount() != 11 || b.Supply[engine.Gold] != 4 {
		t.Fatalf("committed half missing: %d tokens, supply gold %d",
			p.TokenCount(), b.Supply[engine.Gold])
	}
	if b.CurrentPlayer != 0 {
		t.Fatal("seat advanced while suspended")
	}

	res = b.ExecuteTurn(take(map[engine.Token]int{engine.Ruby: -1}))
	if res.Err != nil || res.Continuation != nil {
		t.Fatalf("return did not resolve: %+v", res)
	}
	if p.TokenCount() != 10 || b.Supply[engine.Ruby] != 5 {
		t.Fatal("return not settled")
	}
	if b.CurrentPlayer != 1 {
		t.Fatal("seat did not advance after the return")
	}
}

func TestReserveWithoutGoldInSupply(t *testing.T) {
	b := newGame(t, 2)
	b.Supply[engine.Gold] = 0
	res := b.ExecuteTurn(&engine.Turn{ReserveKey: b.Visible[1][0].Key})
	if res.Err != nil || res.Continuation != nil {
		t.Fatalf("reserve failed: %+v", res)
	}
	if b.Players[0].Tokens[engine.Gold] != 0 {
		t.Fatal("gold granted from an empty supply")
	}
}

func TestPurchaseVisibleCard(t *testing.T) {
	b := newGame(t, 2)
	card := engine.Card{Key: "test-ruby", Tier: 1, Gem: engine.Ruby,
		Price: map[engine.Token]int{engine.Diamond: 1, engine.Sapphire: 1}}
	b.Visible[1][0] = &card
	p := b.Players[0]
	p.Tokens[engine.Diamond] = 1
	p.Tokens[engine.Sapphire] = 1

	res := b.ExecuteTurn(&engine.Turn{PurchaseKey: "test-ruby"})
	if res.Err != nil {
		t.Fatalf("purchase failed: %v", res.Err)
	}
	if res.ConsumedTokens[engine.Diamond] != 1 || res.ConsumedTokens[engine.Sapphire] != 1 {
		t.Errorf("consumed %v", res.ConsumedTokens)
	}
	if b.Supply[engine.Diamond] != 5 || b.Supply[engine.Sapphire] != 5 {
		t.Error("payment not settled into the supply")
	}
	if len(p.Cards) != 1 || p.Bonuses[engine.Ruby] != 1 {
		t.Error("card not owned after purchase")
	}
	if slot := b.Visible[1][0]; slot == nil || slot.Key == "test-ruby" {
		t.Error("vacated slot not refilled")
	}
	if b.CurrentPlayer != 1 {
		t.Error("seat did not advance")
	}
}

func TestPurchaseReservedCard(t *testing.T) {
	b := newGame(t, 2)
	p := b.Players[0]
	p.Reserved = append(p.Reserved, engine.Card{Key: "held", Tier: 1, Gem: engine.Onyx,
		Price: map[engine.Token]int{engine.Ruby: 1}})
	p.Tokens[engine.Ruby] = 1
	before := make([]string, engine.VisibleSlots)
	for i, c := range b.Visible[1] {
		before[i] = c.Key
	}

	res := b.ExecuteTurn(&engine.Turn{PurchaseKey: "held"})
	if res.Err != nil {
		t.Fatalf("purchase failed: %v", res.Err)
	}
	if len(p.Reserved) != 0 || len(p.Cards) != 1 {
		t.Fatal("card did not move from reserve to owned")
	}
	for i, c := range b.Visible[1] {
		if c.Key != before[i] {
			t.Fatal("buying from reserve disturbed the visible row")
		}
	}
}

func TestPurchaseFirstOfTwoReservedCards(t *testing.T) {
	b := newGame(t, 2)
	p := b.Players[0]
	p.Reserved = append(p.Reserved,
		engine.Card{Key: "first", Tier: 1, Gem: engine.Ruby, Points: 1,
			Price: map[engine.Token]int{engine.Diamond: 1}},
		engine.Card{Key: "second", Tier: 1, Gem: engine.Onyx})
	p.Tokens[engine.Diamond] = 1

	res := b.ExecuteTurn(&engine.Turn{PurchaseKey: "first"})
	if res.Err != nil {
		t.Fatalf("purchase failed: %v", res.Err)
	}
	if len(p.Cards) != 1 || p.Cards[0].Key != "first" {
		t.Fatalf("owned cards %v, want [first]", p.Cards)
	}
	if len(p.Reserved) != 1 || p.Reserved[0].Key != "second" {
		t.Fatalf("reserved %v, want [second]", p.Reserved)
	}
	if p.Bonuses[engine.Ruby] != 1 || p.Bonuses[engine.Onyx] != 0 {
		t.Fatalf("bonuses ruby %d onyx %d, want 1 and 0",
			p.Bonuses[engine.Ruby], p.Bonuses[engine.Onyx])
	}
	if p.Prestige != 1 {
		t.Fatalf("prestige %d, want 1", p.Prestige)
	}
}

func TestPurchaseUnknownCard(t *testing.T) {
	b := newGame(t, 2)
	res := b.ExecuteTurn(&engine.Turn{PurchaseKey: "no-such-card"})
	if res.Err == nil || res.Err.Kind != engine.ErrCardUnavailable {
		t.Fatalf("got %v, want CardUnavailable", res.Err)
	}
}

func TestPurchaseInsufficientFundsLeavesBoard(t *testing.T) {
	b := newGame(t, 2)
	card := engine.Card{Key: "pricey", Tier: 1, Gem: engine.Ruby,
		Price: map[engine.Token]int{engine.Diamond: 4}}
	b.Visible[1][0] = &card
	res := b.ExecuteTurn(&engine.Turn{PurchaseKey: "pricey"})
	if res.Err == nil || res.Err.Kind != engine.ErrInsufficientFunds {
		t.Fatalf("got %v, want InsufficientFunds", res.Err)
	}
	if b.Visible[1][0].Key != "pricey" || b.Version != 0 {
		t.Fatal("failed purchase mutated the board")
	}
}

func TestNobleContinuationAfterPurchase(t *testing.T) {
	b := newGame(t, 2)
	noble := engine.Noble{Key: "test-noble", Points: engine.NoblePoints,
		Criteria: map[engine.Token]int{engine.Ruby: 1}}
	b.Nobles = []engine.Noble{noble}
	b.Visible[1][0] = &engine.Card{Key: "free-ruby", Tier: 1, Gem: engine.Ruby}
	p := b.Players[0]

	res := b.ExecuteTurn(&engine.Turn{PurchaseKey: "free-ruby"})
	if res.Continuation == nil || res.Continuation.Code != engine.ContinueChooseNoble {
		t.Fatalf("got %+v, want code-1 continuation", res)
	}
	if len(res.Continuation.Nobles) != 1 || res.Continuation.Nobles[0].Key != "test-noble" {
		t.Fatalf("offered %v", res.Continuation.Nobles)
	}
	if b.CurrentPlayer != 0 {
		t.Fatal("seat advanced while a noble choice is pending")
	}
	if b.Phase() != engine.PhaseAwaitingNoble {
		t.Fatalf("phase %s, want AwaitingNoble", b.Phase())
	}

	res = b.ExecuteTurn(&engine.Turn{NobleKey: "test-noble"})
	if res.Err != nil || res.Continuation != nil {
		t.Fatalf("acquisition failed: %+v", res)
	}
	if len(b.Nobles) != 0 {
		t.Fatal("noble still in the pool")
	}
	if len(p.Nobles) != 1 || p.Prestige != engine.NoblePoints {
		t.Fatalf("player nobles %v prestige %d", p.Nobles, p.Prestige)
	}
	if b.CurrentPlayer != 1 {
		t.Fatal("seat did not advance after acquisition")
	}
}

func TestNobleCriteriaUnmet(t *testing.T) {
	b := newGame(t, 2)
	b.Nobles = []engine.Noble{{Key: "strict", Points: engine.NoblePoints,
		Criteria: map[engine.Token]int{engine.Ruby: 4}}}
	res := b.ExecuteTurn(&engine.Turn{NobleKey: "strict"})
	if res.Err == nil || res.Err.Kind != engine.ErrNobleCriteriaUnmet {
		t.Fatalf("got %v, want NobleCriteriaUnmet", res.Err)
	}
	if len(b.Nobles) != 1 {
		t.Fatal("failed acquisition removed the noble")
	}
}

func TestNobleUnknownKey(t *testing.T) {
	b := newGame(t, 2)
	res := b.ExecuteTurn(&engine.Turn{NobleKey: "no-such-noble"})
	if res.Err == nil || res.Err.Kind != engine.ErrCardUnavailable {
		t.Fatalf("got %v, want CardUnavailable", res.Err)
	}
}

func TestOneNoblePerTurn(t *testing.T) {
	b := newGame(t, 2)
	b.Nobles = []engine.Noble{
		{Key: "first", Points: engine.NoblePoints, Criteria: map[engine.Token]int{engine.Ruby: 1}},
		{Key: "second", Points: engine.NoblePoints, Criteria: map[engine.Token]int{engine.Ruby: 1}},
	}
	b.Players[0].Bonuses[engine.Ruby] = 1

	res := b.ExecuteTurn(&engine.Turn{NobleKey: "first"})
	if res.Err != nil {
		t.Fatalf("acquisition failed: %v", res.Err)
	}
	// Qualifying for "second" as well does not re-suspend the turn.
	if res.Continuation != nil {
		t.Fatal("second noble offered in the same turn")
	}
	if len(b.Nobles) != 1 || b.Nobles[0].Key != "second" {
		t.Fatalf("pool %v", b.Nobles)
	}
	if b.CurrentPlayer != 1 {
		t.Fatal("seat did not advance")
	}
}

func TestLastRoundAndWinner(t *testing.T) {
	b := newGame(t, 2)
	b.Nobles = nil
	b.Players[0].Prestige = 14
	b.Visible[1][0] = &engine.Card{Key: "closer", Tier: 1, Gem: engine.Ruby, Points: 1}

	if b.Winner() != nil {
		t.Fatal("winner reported before game over")
	}
	res := b.ExecuteTurn(&engine.Turn{PurchaseKey: "closer"})
	if res.Err != nil || res.GameOver {
		t.Fatalf("turn result %+v", res)
	}
	if !b.LastRound || b.GameOver {
		t.Fatalf("lastRound %v gameOver %v after reaching 15", b.LastRound, b.GameOver)
	}
	if b.CurrentPlayer != 1 {
		t.Fatal("remaining seats still get their turn")
	}

	res = b.ExecuteTurn(take(map[engine.Token]int{engine.Onyx: 1}))
	if res.Err != nil || !res.GameOver {
		t.Fatalf("last seat result %+v", res)
	}
	if !b.GameOver || b.Phase() != engine.PhaseGameOver {
		t.Fatal("game did not end after the last seat finished")
	}
	if w := b.Winner(); w == nil || w.Id != 0 {
		t.Fatalf("winner %+v, want seat 0", w)
	}
}

func TestWinnerTieBreaksToFewestCards(t *testing.T) {
	p0 := engine.NewPlayer(0, "anna")
	p1 := engine.NewPlayer(1, "boris")
	p0.Prestige, p1.Prestige = 15, 15
	p0.Cards = make([]engine.Card, 6)
	p1.Cards = make([]engine.Card, 4)
	b := &engine.Board{Players: []*engine.Player{p0, p1}, GameOver: true}
	if w := b.Winner(); w != p1 {
		t.Fatalf("winner %v, want the player with fewer cards", w)
	}
}

func TestCancelPendingReservation(t *testing.T) {
	b := newGame(t, 2)
	p := b.Players[0]
	p.Tokens[engine.Diamond] = 5
	p.Tokens[engine.Ruby] = 5
	key := b.Visible[1][0].Key
	deckBefore := b.Decks[1].Len()

	res := b.ExecuteTurn(&engine.Turn{ReserveKey: key})
	if res.Continuation == nil {
		t.Fatalf("expected a continuation, got %+v", res)
	}
	version := b.Version

	if !b.CancelPendingTurn() {
		t.Fatal("cancel refused a pending continuation")
	}
	if len(p.Reserved) != 0 {
		t.Fatal("reservation not reversed")
	}
	if p.Tokens[engine.Gold] != 0 || b.Supply[engine.Gold] != 5 {
		t.Fatal("gold grant not reclaimed")
	}
	if b.Decks[1].Len() != deckBefore {
		t.Fatal("cancelled card did not return to the board")
	}
	if b.Version != version+1 {
		t.Fatalf("version %d, want %d", b.Version, version+1)
	}
	if b.Phase() != engine.PhaseInProgress || b.CurrentPlayer != 0 {
		t.Fatal("seat state wrong after cancel")
	}

	if b.CancelPendingTurn() {
		t.Fatal("cancel succeeded with nothing pending")
	}
}

func TestTokenConservation(t *testing.T) {
	b := newGame(t, 2)
	totals := make(map[engine.Token]int)
	for _, tok := range engine.AllTokens() {
		totals[tok] = b.Supply[tok]
	}
	check := func(step string) {
		t.Helper()
		for _, tok := range engine.AllTokens() {
			sum := b.Supply[tok]
			for _, p := range b.Players {
				sum += p.Tokens[tok]
			}
			if sum != totals[tok] {
				t.Fatalf("%s: %s total %d, want %d", step, tok, sum, totals[tok])
			}
		}
	}

	b.Visible[1][0] = &engine.Card{Key: "buyable", Tier: 1, Gem: engine.Ruby,
		Price: map[engine.Token]int{engine.Diamond: 1, engine.Sapphire: 1, engine.Emerald: 1}}

	steps := []*engine.Turn{
		take(map[engine.Token]int{engine.Diamond: 1, engine.Sapphire: 1, engine.Emerald: 1}),
		take(map[engine.Token]int{engine.Ruby: 1, engine.Onyx: 1, engine.Emerald: 1}),
		{PurchaseKey: "buyable"},
		{ReserveTier: 2},
		{ReserveKey: b.Visible[3][0].Key},
	}
	for i, turn := range steps {
		if res := b.ExecuteTurn(turn); res.Err != nil {
			t.Fatalf("step %d failed: %v", i, res.Err)
		}
		check(fmt.Sprintf("after step %d", i))
	}
}

func TestVersionOnlyIncreases(t *testing.T) {
	b := newGame(t, 2)
	last := b.Version
	bump := func(changed bool) {
		t.Helper()
		if changed && b.Version <= last {
			t.Fatalf("version %d did not increase past %d", b.Version, last)
		}
		if !changed && b.Version != last {
			t.Fatalf("version moved to %d on a rejected turn", b.Version)
		}
		last = b.Version
	}

	b.ExecuteTurn(take(map[engine.Token]int{engine.Gold: 1}))
	bump(false)
	b.ExecuteTurn(take(map[engine.Token]int{engine.Ruby: 1}))
	bump(true)
	b.ExecuteTurn(&engine.Turn{ReserveTier: 1})
	bump(true)
}
