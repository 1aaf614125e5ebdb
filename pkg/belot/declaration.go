package belot

// DeclKind distinguishes the two meld families.
type DeclKind uint8

const (
	DeclSequence DeclKind = iota + 1 // run of 3+ consecutive ranks in one suit
	DeclFour                         // four cards of one rank
)

// Declaration is a transient meld record derived from a hand at the
// declaration checkpoint. It is never mutated, only recomputed.
type Declaration struct {
	Kind    DeclKind
	Score   int
	Length  int  // sequence only
	TopRank Rank // sequence: highest rank of the run, four: the rank
	Suit    Suit // sequence only
	Trump   bool // sequence in the trump suit, used as the final tie-break
	Seat    int  // owning seat, stamped at submission
}

// Melds always use the plain 7..A rank order, regardless of trump.
var declOrder = [...]Rank{Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK, RankA}

func declIndex(r Rank) int {
	return orderIndex(declOrder[:], r)
}

// SequenceScore returns the meld value for a run of the given length.
func SequenceScore(length int) int {
	switch {
	case length == 3:
		return 20
	case length == 4:
		return 50
	case length == 5:
		return 100
	case length == 6:
		return 150
	case length == 7:
		return 200
	case length >= 8:
		return 500
	}
	return 0
}

// FourScore returns the meld value of four cards of the given rank. Fours of
// 7s and 8s score nothing here: they arm the special cancellation rules
// instead of counting as ordinary melds.
func FourScore(rank Rank) int {
	switch rank {
	case RankA, RankK, RankQ, Rank10:
		return 100
	case Rank9:
		return 150
	case RankJ:
		return 200
	}
	return 0
}

// FindSequences returns one declaration per maximal run of 3 or more
// consecutive ranks within a suit. A longer run never also yields its
// sub-runs.
func FindSequences(hand Cards, trump Suit) []Declaration {
	var decls []Declaration

	for _, suit := range []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades} {
		cards := hand.OfSuit(suit)
		if len(cards) < 3 {
			continue
		}

		// Positions in the plain meld order, ascending.
		present := [len(declOrder)]bool{}
		for _, c := range cards {
			present[declIndex(c.Rank)] = true
		}

		i := 0
		for i < len(declOrder) {
			if !present[i] {
				i++
				continue
			}
			j := i + 1
			for j < len(declOrder) && present[j] {
				j++
			}
			if length := j - i; length >= 3 {
				decls = append(decls, Declaration{
					Kind:    DeclSequence,
					Score:   SequenceScore(length),
					Length:  length,
					TopRank: declOrder[j-1],
					Suit:    suit,
					Trump:   suit == trump,
				})
			}
			i = j
		}
	}
	return decls
}

// FindFourOfKind returns one declaration per rank held four times. Fours of
// 7s and 8s are omitted: they are meld-irrelevant and handled through
// HasFourSevens / HasFourEights.
func FindFourOfKind(hand Cards) []Declaration {
	var decls []Declaration
	for rank := Rank7; rank <= RankA; rank++ {
		if hand.CountRank(rank) != 4 {
			continue
		}
		score := FourScore(rank)
		if score == 0 {
			continue
		}
		decls = append(decls, Declaration{
			Kind:    DeclFour,
			Score:   score,
			TopRank: rank,
		})
	}
	return decls
}

// AllDeclarations returns every meld in the hand.
func AllDeclarations(hand Cards, trump Suit) []Declaration {
	decls := FindSequences(hand, trump)
	return append(decls, FindFourOfKind(hand)...)
}

// CheckBelot reports whether the hand holds both King and Queen of trump.
// The 20 points are paid only when one of the two cards is actually played.
func CheckBelot(hand Cards, trump Suit) bool {
	return hand.Contains(NewCard(trump, RankK)) && hand.Contains(NewCard(trump, RankQ))
}

// HasFourSevens reports whether the hand holds all four 7s, which voids the
// entire round.
func HasFourSevens(hand Cards) bool {
	return hand.CountRank(Rank7) == 4
}

// HasFourEights reports whether the hand holds all four 8s, which cancels
// every meld except Belot.
func HasFourEights(hand Cards) bool {
	return hand.CountRank(Rank8) == 4
}

// rankKey orders declarations for cross-player resolution: a four of a kind
// outranks any sequence, then score, then top card, then trump suit.
func (d Declaration) rankKey() [4]int {
	if d.Kind == DeclFour {
		return [4]int{2, d.Score, 0, 0}
	}
	trump := 0
	if d.Trump {
		trump = 1
	}
	return [4]int{1, d.Score, declIndex(d.TopRank), trump}
}

func keyLess(a, b [4]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// ResolveBest returns the seat owning the single highest-ranked declaration.
// Only that seat's team scores its melds for the round. ok is false when no
// declarations were made at all.
func ResolveBest(all []Declaration) (seat int, ok bool) {
	if len(all) == 0 {
		return 0, false
	}
	best := all[0]
	for _, d := range all[1:] {
		if keyLess(best.rankKey(), d.rankKey()) {
			best = d
		}
	}
	return best.Seat, true
}
