package belot

import "math/rand/v2"

// Suit of a card.
type Suit uint8

const (
	SuitNone Suit = iota
	SuitClubs
	SuitDiamonds
	SuitHearts
	SuitSpades
)

var suitNames = [...]string{"?", "clubs", "diamonds", "hearts", "spades"}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return "?"
}

// Rank of a card. The deck is short: 7 through Ace.
type Rank uint8

const (
	RankNone Rank = iota
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

var rankNames = [...]string{"?", "7", "8", "9", "10", "J", "Q", "K", "A"}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return "?"
}

// Card points, indexed by Rank. Jack and 9 are promoted in the trump suit.
var nonTrumpPoints = [RankA + 1]int{Rank7: 0, Rank8: 0, Rank9: 0, Rank10: 10, RankJ: 2, RankQ: 3, RankK: 4, RankA: 11}
var trumpPoints = [RankA + 1]int{Rank7: 0, Rank8: 0, Rank9: 14, Rank10: 10, RankJ: 20, RankQ: 3, RankK: 4, RankA: 11}

// Rank order inside one suit, weakest first. Trump reorders 9 and J to the top.
var nonTrumpOrder = [...]Rank{Rank7, Rank8, Rank9, RankJ, RankQ, RankK, Rank10, RankA}
var trumpOrder = [...]Rank{Rank7, Rank8, RankQ, RankK, Rank10, RankA, Rank9, RankJ}

func orderIndex(order []Rank, r Rank) int {
	for i, o := range order {
		if o == r {
			return i
		}
	}
	return -1
}

// Card is an immutable (suit, rank) value. Two cards are equal iff both match.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard builds a card value.
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		Suit: suit,
		Rank: rank,
	}
}

func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Points returns the card's point value under the given trump suit.
func (c Card) Points(trump Suit) int {
	if c.Suit == trump {
		return trumpPoints[c.Rank]
	}
	return nonTrumpPoints[c.Rank]
}

// TrumpOrder returns the card's position in the trump ranking, weakest first.
func (c Card) TrumpOrder() int {
	return orderIndex(trumpOrder[:], c.Rank)
}

// NonTrumpOrder returns the card's position in the plain ranking, weakest first.
func (c Card) NonTrumpOrder() int {
	return orderIndex(nonTrumpOrder[:], c.Rank)
}

// Strength returns the card's ordinal under the given trump suit. It only
// orders cards within one suit; use Beats for cross-suit comparisons.
func (c Card) Strength(trump Suit) int {
	if c.Suit == trump {
		return c.TrumpOrder()
	}
	return c.NonTrumpOrder()
}

// Beats reports whether c, played after other into the same trick, takes the
// trick from it. A trump beats any non-trump; between trumps the trump order
// decides; between plain cards the lead suit beats off-suit and the plain
// order decides inside the lead suit. Two off-suit non-trumps cannot take
// anything, so that pairing is a deterministic false.
func (c Card) Beats(other Card, trump, lead Suit) bool {
	if c.Suit == trump && other.Suit != trump {
		return true
	}
	if c.Suit != trump && other.Suit == trump {
		return false
	}
	if c.Suit == trump && other.Suit == trump {
		return c.TrumpOrder() > other.TrumpOrder()
	}
	if c.Suit == lead && other.Suit != lead {
		return true
	}
	if c.Suit != lead && other.Suit == lead {
		return false
	}
	if c.Suit == other.Suit {
		return c.NonTrumpOrder() > other.NonTrumpOrder()
	}
	return false
}

type Cards []Card

// NewDeck returns the 32-card deck in canonical order: suits clubs through
// spades, ranks 7 through Ace within each suit.
func NewDeck() Cards {
	suits := []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}
	ranks := []Rank{Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK, RankA}

	cards := make(Cards, 0, len(suits)*len(ranks))
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle randomizes the order of the cards in place.
func (cs Cards) Shuffle() {
	rand.Shuffle(len(cs), func(i, j int) {
		cs[i], cs[j] = cs[j], cs[i]
	})
}

// Clone returns an independent copy.
func (cs Cards) Clone() Cards {
	out := make(Cards, len(cs))
	copy(out, cs)
	return out
}

// Contains reports whether the card is present.
func (cs Cards) Contains(card Card) bool {
	for _, c := range cs {
		if c == card {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the card, or -1.
func (cs Cards) IndexOf(card Card) int {
	for i, c := range cs {
		if c == card {
			return i
		}
	}
	return -1
}

// OfSuit returns the cards of the given suit, preserving hand order.
func (cs Cards) OfSuit(suit Suit) Cards {
	var out Cards
	for _, c := range cs {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

// CountRank returns how many cards of the rank are present.
func (cs Cards) CountRank(rank Rank) int {
	count := 0
	for _, c := range cs {
		if c.Rank == rank {
			count++
		}
	}
	return count
}

// Points sums the point values of the cards under the given trump suit.
func (cs Cards) Points(trump Suit) int {
	total := 0
	for _, c := range cs {
		total += c.Points(trump)
	}
	return total
}

// Remove deletes the first occurrence of the card, returning false if absent.
func (cs *Cards) Remove(card Card) bool {
	i := cs.IndexOf(card)
	if i < 0 {
		return false
	}
	*cs = append((*cs)[:i], (*cs)[i+1:]...)
	return true
}
