package belot

import "testing"

func TestStatusSnapshot(t *testing.T) {
	g := newTable(t, 4, fullSuitDeck())
	g.StartRound()

	st := g.Status()
	if st.ID != "T1" || st.State != StateBidding || st.Round != 1 {
		t.Errorf("unexpected status %+v", st)
	}
	if st.Bidder != 102 || st.BidRound != 1 {
		t.Errorf("expected bidder 102 in round 1, got %+v", st)
	}
	if st.Proposed != NewCard(SuitClubs, RankQ) {
		t.Errorf("expected proposed Queen of clubs, got %v", st.Proposed)
	}
	if len(st.Players) != 4 || st.Players[2].HandSize != 5 {
		t.Errorf("unexpected players %+v", st.Players)
	}

	for _, pid := range []int64{102, 103, 104, 101} {
		g.BidPass(pid)
	}
	g.BidTake(102, SuitDiamonds)
	st = g.Status()
	if st.Trump != SuitDiamonds || st.Taker != 102 {
		t.Errorf("expected diamonds taken by 102, got %+v", st)
	}
	if st.Bidder != 0 {
		t.Errorf("bidder should clear outside bidding, got %d", st.Bidder)
	}

	// Status must be read-only: two snapshots agree and mutating one's
	// scores does not leak back.
	st.Scores[0] = 999
	if g.Status().Scores[0] == 999 {
		t.Error("status must copy scores")
	}
}

func TestHand(t *testing.T) {
	g := newTable(t, 4, fullSuitDeck())
	g.StartRound()

	hand, err := g.Hand(101)
	if err != nil {
		t.Fatal(err)
	}
	if len(hand) != 5 || hand[0] != NewCard(SuitClubs, Rank7) {
		t.Errorf("unexpected hand %v", hand)
	}
	// Deal order is preserved for index-based addressing.
	hand[0] = NewCard(SuitSpades, RankA)
	if g.round.hands[0][0] != NewCard(SuitClubs, Rank7) {
		t.Error("Hand must return a copy")
	}

	if _, err := g.Hand(999); err != ErrUnknownPlayer {
		t.Errorf("expected ErrUnknownPlayer, got %v", err)
	}
}
