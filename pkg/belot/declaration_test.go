package belot

import "testing"

func seq(suit Suit, ranks ...Rank) Cards {
	var cs Cards
	for _, r := range ranks {
		cs = append(cs, NewCard(suit, r))
	}
	return cs
}

func TestFindSequences(t *testing.T) {
	tests := []struct {
		name    string
		hand    Cards
		score   int
		length  int
		topRank Rank
	}{
		{"tierce", seq(SuitClubs, Rank7, Rank8, Rank9), 20, 3, Rank9},
		{"fifty", seq(SuitClubs, Rank9, Rank10, RankJ, RankQ), 50, 4, RankQ},
		{"hundred", seq(SuitClubs, Rank10, RankJ, RankQ, RankK, RankA), 100, 5, RankA},
		{"six run", seq(SuitClubs, Rank8, Rank9, Rank10, RankJ, RankQ, RankK), 150, 6, RankK},
		{"seven run", seq(SuitClubs, Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK), 200, 7, RankK},
		{"full suit", seq(SuitClubs, Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK, RankA), 500, 8, RankA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := FindSequences(tt.hand, SuitHearts)
			if len(decls) != 1 {
				t.Fatalf("expected one declaration, got %d", len(decls))
			}
			d := decls[0]
			if d.Kind != DeclSequence || d.Score != tt.score || d.Length != tt.length || d.TopRank != tt.topRank {
				t.Errorf("got %+v", d)
			}
		})
	}
}

func TestFindSequencesNoSubRuns(t *testing.T) {
	// A 5-run yields one declaration, never its embedded 3- and 4-runs.
	hand := seq(SuitSpades, Rank7, Rank8, Rank9, Rank10, RankJ)
	decls := FindSequences(hand, SuitHearts)
	if len(decls) != 1 || decls[0].Score != 100 {
		t.Errorf("expected a single 100 declaration, got %+v", decls)
	}
}

func TestFindSequencesGapsAndSuits(t *testing.T) {
	// 7-8-9 and J-Q-K in one suit are two separate runs; a pair across a gap
	// is no run at all. The meld order is plain 7..A even for trumps.
	hand := append(seq(SuitHearts, Rank7, Rank8, Rank9, RankJ, RankQ, RankK),
		seq(SuitClubs, Rank9, Rank10)...)
	decls := FindSequences(hand, SuitHearts)
	if len(decls) != 2 {
		t.Fatalf("expected two declarations, got %+v", decls)
	}
	for _, d := range decls {
		if d.Score != 20 || !d.Trump {
			t.Errorf("expected trump tierces, got %+v", d)
		}
	}
}

func TestFindFourOfKind(t *testing.T) {
	tests := []struct {
		rank  Rank
		score int
	}{
		{RankA, 100}, {RankK, 100}, {RankQ, 100}, {Rank10, 100},
		{Rank9, 150}, {RankJ, 200},
	}

	for _, tt := range tests {
		hand := Cards{
			NewCard(SuitClubs, tt.rank), NewCard(SuitDiamonds, tt.rank),
			NewCard(SuitHearts, tt.rank), NewCard(SuitSpades, tt.rank),
		}
		decls := FindFourOfKind(hand)
		if len(decls) != 1 {
			t.Fatalf("four %vs: expected one declaration, got %d", tt.rank, len(decls))
		}
		if decls[0].Kind != DeclFour || decls[0].Score != tt.score || decls[0].TopRank != tt.rank {
			t.Errorf("four %vs: got %+v", tt.rank, decls[0])
		}
	}
}

// Fours of 7s and 8s never become melds: they only arm the special rules.
func TestFourSevensAndEights(t *testing.T) {
	sevens := Cards{
		NewCard(SuitClubs, Rank7), NewCard(SuitDiamonds, Rank7),
		NewCard(SuitHearts, Rank7), NewCard(SuitSpades, Rank7),
	}
	eights := Cards{
		NewCard(SuitClubs, Rank8), NewCard(SuitDiamonds, Rank8),
		NewCard(SuitHearts, Rank8), NewCard(SuitSpades, Rank8),
	}

	if decls := FindFourOfKind(sevens); len(decls) != 0 {
		t.Errorf("four 7s should yield no meld, got %+v", decls)
	}
	if decls := FindFourOfKind(eights); len(decls) != 0 {
		t.Errorf("four 8s should yield no meld, got %+v", decls)
	}
	if !HasFourSevens(sevens) || HasFourSevens(eights) {
		t.Error("HasFourSevens misfired")
	}
	if !HasFourEights(eights) || HasFourEights(sevens) {
		t.Error("HasFourEights misfired")
	}
}

func TestCheckBelot(t *testing.T) {
	hand := Cards{NewCard(SuitHearts, RankK), NewCard(SuitHearts, RankQ), NewCard(SuitClubs, RankA)}
	if !CheckBelot(hand, SuitHearts) {
		t.Error("K+Q of trump should be a Belot")
	}
	if CheckBelot(hand, SuitClubs) {
		t.Error("K+Q off-trump is not a Belot")
	}
	if CheckBelot(hand[:1], SuitHearts) {
		t.Error("King alone is not a Belot")
	}
}

func TestResolveBestFourBeatsAnySequence(t *testing.T) {
	// A four of a kind outranks even a 200-point sequence.
	all := []Declaration{
		{Kind: DeclSequence, Score: 200, Length: 7, TopRank: RankK, Seat: 1},
		{Kind: DeclFour, Score: 100, TopRank: Rank10, Seat: 2},
	}
	seat, ok := ResolveBest(all)
	if !ok || seat != 2 {
		t.Errorf("expected seat 2, got %d (ok=%v)", seat, ok)
	}
}

func TestResolveBestSequenceTieBreaks(t *testing.T) {
	// Equal score: the higher top card wins.
	all := []Declaration{
		{Kind: DeclSequence, Score: 50, Length: 4, TopRank: RankQ, Seat: 0},
		{Kind: DeclSequence, Score: 50, Length: 4, TopRank: RankA, Seat: 1},
	}
	if seat, _ := ResolveBest(all); seat != 1 {
		t.Errorf("higher top card should win, got seat %d", seat)
	}

	// Equal score and top card: the trump-suit sequence wins.
	all = []Declaration{
		{Kind: DeclSequence, Score: 50, Length: 4, TopRank: RankA, Trump: true, Seat: 3},
		{Kind: DeclSequence, Score: 50, Length: 4, TopRank: RankA, Seat: 0},
	}
	if seat, _ := ResolveBest(all); seat != 3 {
		t.Errorf("trump sequence should win the tie, got seat %d", seat)
	}
}

func TestResolveBestEmpty(t *testing.T) {
	if _, ok := ResolveBest(nil); ok {
		t.Error("no declarations should resolve to none")
	}
}
