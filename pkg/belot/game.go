package belot

// State is the lifecycle phase of a table.
type State int8

const (
	StateWaiting      State = iota // seats still filling
	StateBidding                   // two-round trump auction
	StateDiscarding                // 3-player taker burying two cards
	StateDeclarations              // meld checkpoint before the first trick
	StatePlaying                   // trick-taking
	StateRoundEnd                  // round scored, next deal pending
	StateGameEnd                   // a side reached the target score
)

var stateNames = [...]string{"waiting", "bidding", "discarding", "declarations", "playing", "round_end", "game_end"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "?"
}

// Outcome of one round's contract evaluation.
type Outcome int8

const (
	OutcomeTakerWon    Outcome = iota // both sides bank their own points
	OutcomeTie                        // opponents bank, taker's points are discarded
	OutcomeTakerFailed                // opponents bank everything
	OutcomeVoided                     // four 7s, no score changes at all
)

var outcomeNames = [...]string{"taker_won", "tie", "taker_failed", "voided"}

func (o Outcome) String() string {
	if int(o) >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "?"
}

// DefaultTarget is the cumulative score that ends a game.
const DefaultTarget = 151

// Play is one card committed to the current trick.
type Play struct {
	Seat int
	Card Card
}

// TrickRecord is a completed trick.
type TrickRecord struct {
	Cards      []Play
	WinnerSeat int
	Points     int
}

// StartResult reports a fresh deal.
type StartResult struct {
	Round     int
	Proposed  Card
	AutoTrump bool  // a Jack was flipped, bidding skipped
	Trump     Suit  // set when AutoTrump
	Taker     int64 // set when AutoTrump
}

// BidResult reports the effect of one bid action.
type BidResult struct {
	Taken  bool
	Trump  Suit         // set when Taken
	Round2 bool         // first bidding round exhausted, same seat starts over
	Redeal bool         // both rounds exhausted; a fresh deal was made
	Start  *StartResult // set when Redeal
}

// DeclarationResult reports one declaration submission.
type DeclarationResult struct {
	AllDone    bool
	Waiting    int    // submissions still outstanding
	TeamScores [2]int // meld points per team, set when AllDone
}

// TrickResult reports a completed trick.
type TrickResult struct {
	Winner     int64
	WinnerSeat int
	Team       int
	Points     int
}

// RoundSummary reports round scoring.
type RoundSummary struct {
	RoundScores [2]int  // per round team, bonuses and melds included
	Totals      []int   // cumulative scores after banking
	Outcome     Outcome
	TakerTeam   int
	Dealer      int     // dealer seat for the next round
	GameOver    bool
	Winners     []int64 // set when GameOver
}

// PlayResult reports one card played.
type PlayResult struct {
	Card      Card
	BelotPaid bool
	Trick     *TrickResult  // set when the card completed a trick
	Round     *RoundSummary // set when the trick completed the round
}

// round holds all per-deal state. It is replaced wholesale on every deal.
type round struct {
	deck        Cards // undealt remainder; in 3-player mode the taker's two reserved cards
	hands       []Cards
	discard     Cards // 3-player taker's buried cards
	proposed    Card
	trump       Suit
	autoTrump   bool
	bidRound    int
	bidder      int
	taker       int
	teams       []int // seat -> round team, computed once trump is fixed
	decls       [][]Declaration
	declDone    []bool
	declScores  [2]int
	belot       []bool // seat holds K+Q of trump
	belotPaid   []bool
	fourSevens  bool
	fourEights  bool
	trick       []Play
	current     int
	trickCounts [2]int
	roundScores [2]int
	history     []TrickRecord
}

// Game is the persistent per-table entity. It is not safe for concurrent
// use; the caller serializes all actions on one table.
type Game struct {
	id       string
	mode     int // 3 or 4 seats
	players  []int64
	names    []string
	state    State
	scores   []int // 4-player: two team totals; 3-player: one total per player
	dealer   int
	roundNum int
	target   int
	round    *round

	shuffleFn func(Cards)
}

// Option configures a Game.
type Option func(*Game)

// WithTarget overrides the cumulative score that ends the game.
func WithTarget(target int) Option {
	return func(g *Game) {
		if target > 0 {
			g.target = target
		}
	}
}

// NewGame creates an empty table for the given id and seat count (3 or 4).
func NewGame(id string, seats int, opts ...Option) *Game {
	if seats != 3 {
		seats = 4
	}
	g := &Game{
		id:        id,
		mode:      seats,
		state:     StateWaiting,
		target:    DefaultTarget,
		shuffleFn: func(cs Cards) { cs.Shuffle() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the table identifier.
func (g *Game) ID() string { return g.id }

// Mode returns the seat count, 3 or 4.
func (g *Game) Mode() int { return g.mode }

// State returns the current lifecycle phase.
func (g *Game) State() State { return g.state }

// Players returns the seated player ids in seating order.
func (g *Game) Players() []int64 {
	out := make([]int64, len(g.players))
	copy(out, g.players)
	return out
}

// IsFull reports whether every seat is taken.
func (g *Game) IsFull() bool {
	return len(g.players) == g.mode
}

func (g *Game) seatOf(playerID int64) int {
	for i, p := range g.players {
		if p == playerID {
			return i
		}
	}
	return -1
}

// AddPlayer seats a player. Seating order is fixed for the table's lifetime.
func (g *Game) AddPlayer(playerID int64, name string) error {
	if g.state != StateWaiting {
		return ErrWrongPhase
	}
	if g.seatOf(playerID) >= 0 {
		return ErrAlreadySeated
	}
	if g.IsFull() {
		return ErrTableFull
	}
	g.players = append(g.players, playerID)
	g.names = append(g.names, name)
	return nil
}

// RemovePlayer unseats a player from a table that has not started.
func (g *Game) RemovePlayer(playerID int64) error {
	if g.state != StateWaiting {
		return ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat < 0 {
		return ErrUnknownPlayer
	}
	g.players = append(g.players[:seat], g.players[seat+1:]...)
	g.names = append(g.names[:seat], g.names[seat+1:]...)
	return nil
}

// StartRound shuffles a fresh deck and opens bidding. Callable once the
// table is full and again after every round end.
func (g *Game) StartRound() (*StartResult, error) {
	if g.state != StateWaiting && g.state != StateRoundEnd {
		return nil, ErrWrongPhase
	}
	if !g.IsFull() {
		return nil, ErrWrongPhase
	}
	if g.scores == nil {
		if g.mode == 3 {
			g.scores = make([]int, 3)
		} else {
			g.scores = make([]int, 2)
		}
	}
	return g.deal(), nil
}

// deal builds a fresh round under the current dealer.
func (g *Game) deal() *StartResult {
	n := g.mode
	g.roundNum++

	deck := NewDeck()
	g.shuffleFn(deck)

	r := &round{
		hands:     make([]Cards, n),
		bidRound:  1,
		bidder:    (g.dealer + 1) % n,
		taker:     -1,
		decls:     make([][]Declaration, n),
		declDone:  make([]bool, n),
		belot:     make([]bool, n),
		belotPaid: make([]bool, n),
	}

	per := 5
	if n == 3 {
		per = 10
	}
	for seat := 0; seat < n; seat++ {
		r.hands[seat] = deck[:per].Clone()
		deck = deck[per:]
	}
	r.deck = deck
	r.proposed = deck[0]

	g.round = r
	g.state = StateBidding

	res := &StartResult{Round: g.roundNum, Proposed: r.proposed}

	// A flipped Jack forces the seat after the dealer to take its suit.
	if r.proposed.Rank == RankJ {
		g.takeTrump(r.bidder, r.proposed.Suit, true)
		res.AutoTrump = true
		res.Trump = r.trump
		res.Taker = g.players[r.taker]
	}
	return res
}

// takeTrump fixes the trump, deals the remainder and advances the phase.
func (g *Game) takeTrump(seat int, trump Suit, auto bool) {
	r := g.round
	r.trump = trump
	r.taker = seat
	r.autoTrump = auto

	// Round-team membership is fixed from here on.
	r.teams = make([]int, g.mode)
	for s := 0; s < g.mode; s++ {
		if g.mode == 3 {
			if s == seat {
				r.teams[s] = 0
			} else {
				r.teams[s] = 1
			}
		} else {
			r.teams[s] = s % 2
		}
	}

	if g.mode == 3 {
		// The two reserved cards, flipped card included, go to the taker.
		r.hands[seat] = append(r.hands[seat], r.deck...)
		r.deck = nil
		g.state = StateDiscarding
	} else {
		// Three more cards each, dealt from the front, flipped card included.
		for s := 0; s < g.mode; s++ {
			r.hands[s] = append(r.hands[s], r.deck[:3]...)
			r.deck = r.deck[3:]
		}
		g.state = StateDeclarations
	}
	r.current = (g.dealer + 1) % g.mode
}

// BidTake accepts the trump. In bidding round 1 the proposed suit is adopted
// and the suit argument is ignored; in round 2 any suit except the proposed
// one must be chosen.
func (g *Game) BidTake(playerID int64, suit Suit) (*BidResult, error) {
	if g.state != StateBidding {
		return nil, ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat < 0 {
		return nil, ErrUnknownPlayer
	}
	r := g.round
	if seat != r.bidder {
		return nil, ErrNotYourTurn
	}

	chosen := r.proposed.Suit
	if r.bidRound == 2 {
		if suit == SuitNone {
			return nil, ErrSuitRequired
		}
		if suit == r.proposed.Suit {
			return nil, ErrSuitRejected
		}
		chosen = suit
	}

	g.takeTrump(seat, chosen, false)
	return &BidResult{Taken: true, Trump: chosen}, nil
}

// BidPass passes. When every seat has passed twice the deal is aborted: the
// dealer advances one seat and a fresh deal is made with nothing carried over.
func (g *Game) BidPass(playerID int64) (*BidResult, error) {
	if g.state != StateBidding {
		return nil, ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat < 0 {
		return nil, ErrUnknownPlayer
	}
	r := g.round
	if seat != r.bidder {
		return nil, ErrNotYourTurn
	}

	n := g.mode
	next := (r.bidder + 1) % n
	if next != (g.dealer+1)%n {
		r.bidder = next
		return &BidResult{}, nil
	}

	if r.bidRound == 1 {
		r.bidRound = 2
		r.bidder = (g.dealer + 1) % n
		return &BidResult{Round2: true}, nil
	}

	g.dealer = (g.dealer + 1) % n
	return &BidResult{Redeal: true, Start: g.deal()}, nil
}

// DiscardCards buries exactly two cards from the 3-player taker's hand,
// identified by hand indices, bringing it back down to ten.
func (g *Game) DiscardCards(playerID int64, indices []int) error {
	if g.state != StateDiscarding {
		return ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat < 0 {
		return ErrUnknownPlayer
	}
	r := g.round
	if seat != r.taker {
		return ErrNotYourTurn
	}
	if len(indices) != 2 || indices[0] == indices[1] {
		return ErrInvalidDiscard
	}
	hand := r.hands[seat]
	for _, i := range indices {
		if i < 0 || i >= len(hand) {
			return ErrInvalidDiscard
		}
	}

	hi, lo := indices[0], indices[1]
	if hi < lo {
		hi, lo = lo, hi
	}
	r.discard = append(r.discard, hand[lo], hand[hi])
	hand = append(hand[:hi], hand[hi+1:]...)
	hand = append(hand[:lo], hand[lo+1:]...)
	r.hands[seat] = hand

	g.state = StateDeclarations
	r.current = (g.dealer + 1) % g.mode
	return nil
}

// SubmitDeclarations records the player's melds, Belot eligibility and the
// special four-7s / four-8s flags. Once every seat has submitted, the melds
// are resolved team against team and play begins.
func (g *Game) SubmitDeclarations(playerID int64) (*DeclarationResult, error) {
	if g.state != StateDeclarations {
		return nil, ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat < 0 {
		return nil, ErrUnknownPlayer
	}
	r := g.round
	if r.declDone[seat] {
		return nil, ErrAlreadySubmitted
	}

	hand := r.hands[seat]
	decls := AllDeclarations(hand, r.trump)
	for i := range decls {
		decls[i].Seat = seat
	}
	r.decls[seat] = decls
	r.declDone[seat] = true
	r.belot[seat] = CheckBelot(hand, r.trump)
	if HasFourSevens(hand) {
		r.fourSevens = true
	}
	if HasFourEights(hand) {
		r.fourEights = true
	}

	waiting := 0
	for _, done := range r.declDone {
		if !done {
			waiting++
		}
	}
	if waiting > 0 {
		return &DeclarationResult{Waiting: waiting}, nil
	}

	g.resolveDeclarations()
	g.state = StatePlaying
	return &DeclarationResult{AllDone: true, TeamScores: r.declScores}, nil
}

// resolveDeclarations applies the 8888 cancellation, picks the single best
// meld and credits the owning team with all of its members' melds.
func (g *Game) resolveDeclarations() {
	r := g.round

	// Four 8s cancel every meld except Belot, which is tracked separately.
	if r.fourEights {
		for seat := range r.decls {
			r.decls[seat] = nil
		}
	}

	var all []Declaration
	for _, decls := range r.decls {
		all = append(all, decls...)
	}
	bestSeat, ok := ResolveBest(all)
	if !ok {
		return
	}
	winning := r.teams[bestSeat]
	for seat, decls := range r.decls {
		if r.teams[seat] != winning {
			continue
		}
		for _, d := range decls {
			r.declScores[winning] += d.Score
		}
	}
}

// GetValidCards returns the cards the player could legally commit to the
// current trick. Read-only.
func (g *Game) GetValidCards(playerID int64) (Cards, error) {
	if g.state != StatePlaying {
		return nil, ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat < 0 {
		return nil, ErrUnknownPlayer
	}
	return g.validCards(seat), nil
}

// PlayCard commits one card to the trick. A full trick is resolved
// immediately; the round's final trick also triggers round scoring.
func (g *Game) PlayCard(playerID int64, card Card) (*PlayResult, error) {
	if g.state != StatePlaying {
		return nil, ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat < 0 {
		return nil, ErrUnknownPlayer
	}
	r := g.round
	if seat != r.current {
		return nil, ErrNotYourTurn
	}
	if !r.hands[seat].Contains(card) {
		return nil, ErrNotInHand
	}
	if !g.validCards(seat).Contains(card) {
		return nil, ErrIllegalCard
	}

	res := &PlayResult{Card: card}

	// Belot pays out the moment the first of the two cards hits the table.
	if r.belot[seat] && !r.belotPaid[seat] &&
		card.Suit == r.trump && (card.Rank == RankK || card.Rank == RankQ) {
		r.declScores[r.teams[seat]] += 20
		r.belotPaid[seat] = true
		res.BelotPaid = true
	}

	r.hands[seat].Remove(card)
	r.trick = append(r.trick, Play{Seat: seat, Card: card})

	if len(r.trick) < g.mode {
		r.current = (r.current + 1) % g.mode
		return res, nil
	}

	res.Trick = g.resolveTrick()
	if len(r.history) == g.trickTarget() {
		res.Round = g.endRound()
	}
	return res, nil
}

func (g *Game) trickTarget() int {
	if g.mode == 3 {
		return 10
	}
	return 8
}

// resolveTrick determines the winner, credits the trick points and makes the
// winner the next leader.
func (g *Game) resolveTrick() *TrickResult {
	r := g.round
	lead := r.trick[0].Card.Suit

	best := r.trick[0]
	for _, p := range r.trick[1:] {
		if p.Card.Beats(best.Card, r.trump, lead) {
			best = p
		}
	}

	team := r.teams[best.Seat]
	points := 0
	cards := make([]Play, len(r.trick))
	copy(cards, r.trick)
	for _, p := range r.trick {
		points += p.Card.Points(r.trump)
	}

	r.trickCounts[team]++
	r.roundScores[team] += points
	r.history = append(r.history, TrickRecord{Cards: cards, WinnerSeat: best.Seat, Points: points})
	r.trick = r.trick[:0]
	r.current = best.Seat

	return &TrickResult{
		Winner:     g.players[best.Seat],
		WinnerSeat: best.Seat,
		Team:       team,
		Points:     points,
	}
}

// endRound applies the bonuses, evaluates the contract, banks the points and
// rotates the dealer.
func (g *Game) endRound() *RoundSummary {
	r := g.round
	g.state = StateRoundEnd

	lastTeam := r.teams[r.history[len(r.history)-1].WinnerSeat]
	r.roundScores[lastTeam] += 10

	for team := 0; team < 2; team++ {
		if r.trickCounts[team] == g.trickTarget() {
			r.roundScores[team] += 90
		}
		r.roundScores[team] += r.declScores[team]
	}

	takerTeam := r.teams[r.taker]
	sum := &RoundSummary{
		RoundScores: r.roundScores,
		TakerTeam:   takerTeam,
	}

	// Four 7s void the round before the contract is even looked at.
	if r.fourSevens {
		g.dealer = (g.dealer + 1) % g.mode
		sum.Outcome = OutcomeVoided
		sum.Dealer = g.dealer
		sum.Totals = append([]int(nil), g.scores...)
		return sum
	}

	opp := 1 - takerTeam
	takerPts := r.roundScores[takerTeam]
	oppPts := r.roundScores[opp]
	switch {
	case takerPts > oppPts:
		g.bank(takerTeam, takerPts)
		g.bank(opp, oppPts)
		sum.Outcome = OutcomeTakerWon
	case takerPts == oppPts:
		// The taker's points are discarded, not deferred.
		g.bank(opp, oppPts)
		sum.Outcome = OutcomeTie
	default:
		g.bank(opp, takerPts+oppPts)
		sum.Outcome = OutcomeTakerFailed
	}

	g.dealer = (g.dealer + 1) % g.mode
	sum.Dealer = g.dealer
	sum.Totals = append([]int(nil), g.scores...)

	for i, total := range g.scores {
		if total < g.target {
			continue
		}
		sum.GameOver = true
		if g.mode == 3 {
			sum.Winners = append(sum.Winners, g.players[i])
		} else {
			for seat, p := range g.players {
				if seat%2 == i {
					sum.Winners = append(sum.Winners, p)
				}
			}
		}
	}
	if sum.GameOver {
		g.state = StateGameEnd
	}
	return sum
}

// bank credits round points to the cumulative scores. In 4-player mode the
// two team totals are fixed; in 3-player mode the taker banks the taker-team
// total alone and each defender banks the defending total.
func (g *Game) bank(team, points int) {
	r := g.round
	if g.mode == 4 {
		g.scores[team] += points
		return
	}
	for seat := 0; seat < g.mode; seat++ {
		if r.teams[seat] == team {
			g.scores[seat] += points
		}
	}
}
