package belot

// validCards computes the legal plays for a seat against the current trick:
// follow the lead suit when possible, overtrump when trump was led or when
// cutting, and never any obligation to beat a winning partner.
func (g *Game) validCards(seat int) Cards {
	r := g.round
	hand := r.hands[seat]
	if len(r.trick) == 0 {
		return hand.Clone()
	}

	lead := r.trick[0].Card.Suit
	best := r.trick[0]
	for _, p := range r.trick[1:] {
		if p.Card.Beats(best.Card, r.trump, lead) {
			best = p
		}
	}

	leadCards := hand.OfSuit(lead)
	if len(leadCards) > 0 {
		if lead == r.trump {
			// Trump was led: a higher trump is mandatory when held.
			if higher := higherTrumps(leadCards, best.Card); len(higher) > 0 {
				return higher
			}
		}
		return leadCards
	}

	// Void in the lead suit. A winning partner lifts every obligation.
	if r.teams[best.Seat] == r.teams[seat] {
		return hand.Clone()
	}

	trumpCards := hand.OfSuit(r.trump)
	if len(trumpCards) == 0 {
		return hand.Clone()
	}

	// Cutting: when a trump is already winning, only a higher one takes.
	if best.Card.Suit == r.trump {
		if higher := higherTrumps(trumpCards, best.Card); len(higher) > 0 {
			return higher
		}
	}
	return trumpCards
}

// higherTrumps filters cards strictly above the given trump in trump order.
func higherTrumps(cards Cards, over Card) Cards {
	var out Cards
	for _, c := range cards {
		if c.TrumpOrder() > over.TrumpOrder() {
			out = append(out, c)
		}
	}
	return out
}
