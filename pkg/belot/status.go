package belot

// SeatStatus is one seat's public view.
type SeatStatus struct {
	Player   int64
	Name     string
	Seat     int
	HandSize int
	Tricks   int // tricks taken by the seat's round team
}

// Status is a read-only projection of the table for the front end. It is a
// snapshot; the engine defines no wire format.
type Status struct {
	ID       string
	State    State
	Mode     int
	Round    int
	Players  []SeatStatus
	Scores   []int
	Dealer   int
	Trump    Suit
	Proposed Card
	BidRound int
	Bidder   int64 // seat to bid, 0 outside bidding
	Taker    int64 // 0 until trump is fixed
	Current  int64 // seat to act, 0 outside discarding/playing
	TrickLen int   // cards in the current trick
}

// Status returns a snapshot of the table. Side-effect free.
func (g *Game) Status() Status {
	st := Status{
		ID:     g.id,
		State:  g.state,
		Mode:   g.mode,
		Round:  g.roundNum,
		Dealer: g.dealer,
		Scores: append([]int(nil), g.scores...),
	}
	for seat, p := range g.players {
		ss := SeatStatus{Player: p, Name: g.names[seat], Seat: seat}
		if g.round != nil {
			ss.HandSize = len(g.round.hands[seat])
			if g.round.teams != nil {
				ss.Tricks = g.round.trickCounts[g.round.teams[seat]]
			}
		}
		st.Players = append(st.Players, ss)
	}

	r := g.round
	if r == nil {
		return st
	}
	st.Trump = r.trump
	st.Proposed = r.proposed
	st.TrickLen = len(r.trick)
	if g.state == StateBidding {
		st.BidRound = r.bidRound
		st.Bidder = g.players[r.bidder]
	}
	if r.taker >= 0 {
		st.Taker = g.players[r.taker]
	}
	if g.state == StateDiscarding {
		st.Current = g.players[r.taker]
	}
	if g.state == StatePlaying {
		st.Current = g.players[r.current]
	}
	return st
}

// Hand returns a copy of the player's current hand, preserving deal order so
// the front end can address cards by index.
func (g *Game) Hand(playerID int64) (Cards, error) {
	seat := g.seatOf(playerID)
	if seat < 0 {
		return nil, ErrUnknownPlayer
	}
	if g.round == nil {
		return nil, ErrWrongPhase
	}
	return g.round.hands[seat].Clone(), nil
}
