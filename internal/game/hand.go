package game

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// HandHistory is the state of a single hand: players, the action log, the
// street and the player to act.
type HandHistory struct {
	cfg    handConfig
	logger *log.Logger

	players []*Player // position table order, SB first
	actions []Action
	undo    []turnState

	street       Street
	current      *Player
	winner       *Player
	totalPot     decimal.Decimal
	largestBlind decimal.Decimal
	blindsPosted bool
	// Heads-up the big blind acts first after the flop.
	headsUpFlipped bool

	extra map[string]any
}

// turnState is the part of the state an action can change besides the logs,
// stacks and pot. One is saved before every action so it can be undone.
type turnState struct {
	street         Street
	current        *Player
	winner         *Player
	largestBlind   decimal.Decimal
	blindsPosted   bool
	headsUpFlipped bool
}

func newHandHistory(cfg handConfig) *HandHistory {
	positions, _ := Positions(len(cfg.stacks))
	players := make([]*Player, len(cfg.stacks))
	for i, stack := range cfg.stacks {
		players[i] = newPlayer(positions[i], stack)
	}
	return &HandHistory{
		cfg:          cfg,
		logger:       cfg.logger,
		players:      players,
		street:       Ante,
		totalPot:     decimal.Zero,
		largestBlind: decimal.Zero,
		extra:        make(map[string]any),
	}
}

func (h *HandHistory) SmallBlind() decimal.Decimal   { return h.cfg.smallBlind }
func (h *HandHistory) BigBlind() decimal.Decimal     { return h.cfg.bigBlind }
func (h *HandHistory) Ante() decimal.Decimal         { return h.cfg.ante }
func (h *HandHistory) BBAnte() decimal.Decimal       { return h.cfg.bbAnte }
func (h *HandHistory) Straddles() int                { return h.cfg.straddles }
func (h *HandHistory) CurrentStreet() Street         { return h.street }
func (h *HandHistory) TotalPot() decimal.Decimal     { return h.totalPot }
func (h *HandHistory) LargestBlind() decimal.Decimal { return h.largestBlind }
func (h *HandHistory) BlindsPosted() bool            { return h.blindsPosted }

// CurrentPlayer returns the player to act, or nil once the hand is over.
func (h *HandHistory) CurrentPlayer() *Player { return h.current }

// Winner returns the last player standing when everybody else folded.
func (h *HandHistory) Winner() *Player { return h.winner }

// Players returns the players in position table order.
func (h *HandHistory) Players() []*Player {
	return slices.Clone(h.players)
}

// Actions returns the whole action log, forced bets included.
func (h *HandHistory) Actions() []Action {
	return slices.Clone(h.actions)
}

// LastAction returns the most recent action of the hand.
func (h *HandHistory) LastAction() (Action, bool) {
	if len(h.actions) == 0 {
		return Action{}, false
	}
	return h.actions[len(h.actions)-1], true
}

// PlayerByPosition looks a player up by seat.
func (h *HandHistory) PlayerByPosition(position Position) (*Player, bool) {
	for _, p := range h.players {
		if p.Position == position {
			return p, true
		}
	}
	return nil, false
}

// IsComplete returns true once no player is left to act.
func (h *HandHistory) IsComplete() bool {
	return h.blindsPosted && h.current == nil
}

// PostBlindsAndAntes posts the antes, blinds and straddles. It must be called
// once, right after construction.
func (h *HandHistory) PostBlindsAndAntes() error {
	if h.blindsPosted || len(h.actions) > 0 {
		return ErrBlindsPosted
	}
	if err := h.postForcedBets(); err != nil {
		for len(h.actions) > 0 {
			_ = h.RemoveLastAction()
		}
		h.current = nil
		return err
	}
	h.blindsPosted = true
	h.logger.Debug("Forced bets posted", "pot", h.totalPot, "largest_blind", h.largestBlind, "to_act", h.current)
	return nil
}

func (h *HandHistory) postForcedBets() error {
	h.current = h.players[0]

	switch {
	case h.cfg.ante.IsPositive():
		for range h.players {
			if err := h.postForced(PostAnte, h.cfg.ante); err != nil {
				return err
			}
		}
	case h.cfg.bbAnte.IsPositive():
		// Every seat posts an ante so each has played the ante street; only
		// the big blind's is non-zero.
		if err := h.postForced(PostAnte, decimal.Zero); err != nil {
			return err
		}
		if err := h.postForced(PostAnte, h.cfg.bbAnte); err != nil {
			return err
		}
		for range len(h.players) - 2 {
			if err := h.postForced(PostAnte, decimal.Zero); err != nil {
				return err
			}
		}
	}
	if h.current == nil {
		// antes put everyone but one player all-in
		return nil
	}

	h.street = PreFlop
	if err := h.postForced(PostSmallBlind, h.cfg.smallBlind); err != nil {
		return err
	}
	if err := h.postForced(PostBigBlind, h.cfg.bigBlind); err != nil {
		return err
	}
	for range h.cfg.straddles {
		last, _ := h.LastAction()
		if err := h.postForced(Straddle, last.Amount.Mul(decimal.NewFromInt(2))); err != nil {
			return err
		}
	}

	last, _ := h.LastAction()
	h.largestBlind = last.Amount
	return nil
}

// postForced posts a forced bet for the current player, capped at their stack.
func (h *HandHistory) postForced(t ActionType, amount decimal.Decimal) error {
	if h.current == nil {
		return nil
	}
	return h.addAction(t, decimal.Min(amount, h.current.Stack))
}

// AddAction validates and applies an action for the current player, then moves
// the turn on. On error nothing is changed.
func (h *HandHistory) AddAction(t ActionType, amount decimal.Decimal) error {
	if !h.blindsPosted {
		return fmt.Errorf("%w: blinds and antes have not been posted", ErrInvalidAction)
	}
	if h.current == nil {
		return fmt.Errorf("%w: the hand is over", ErrInvalidAction)
	}
	if !slices.Contains(h.PossibleActionTypes(), t) {
		return fmt.Errorf("%w: %s cannot %s", ErrInvalidAction, h.current.Position, t)
	}
	return h.addAction(t, amount)
}

func (h *HandHistory) addAction(t ActionType, amount decimal.Decimal) error {
	p := h.current
	if p == nil {
		return fmt.Errorf("%w: no player to act", ErrInvalidAction)
	}

	var added decimal.Decimal
	switch t {
	case Bet:
		if amount.LessThan(h.cfg.bigBlind) {
			return fmt.Errorf("%w: bet of %s is less than the big blind %s", ErrInvalidAmount, amount, h.cfg.bigBlind)
		}
		added = amount
	case Call:
		added = h.CurrentPlayerAmountToCall()
		amount = added
	case Raise:
		if minRaise := h.MinimumRaise(); amount.LessThan(minRaise) {
			return fmt.Errorf("%w: raise of %s is less than the minimum raise %s", ErrInvalidAmount, amount, minRaise)
		}
		added = amount.Add(h.CurrentPlayerAmountToCall())
	case PostAnte, PostSmallBlind, PostBigBlind, Straddle:
		if amount.IsNegative() {
			return fmt.Errorf("%w: %s of %s", ErrInvalidAmount, t, amount)
		}
		added = amount
	case Check, Fold:
		amount = decimal.Zero
		added = decimal.Zero
	default:
		return fmt.Errorf("%w: %s", ErrInvalidAction, t)
	}

	if added.GreaterThan(p.Stack) {
		return fmt.Errorf("%w: %s needs %s but %s only has %s", ErrInvalidAmount, t, added, p.Position, p.Stack)
	}

	action := Action{
		Street:     h.street,
		Player:     p.Position,
		Type:       t,
		Amount:     amount,
		AddedToPot: added,
	}
	h.undo = append(h.undo, h.snapshot())
	h.actions = append(h.actions, action)
	p.actions = append(p.actions, action)
	p.Stack = p.Stack.Sub(added)
	h.totalPot = h.totalPot.Add(added)

	h.logger.Debug("Action applied",
		"n", len(h.actions),
		"street", action.Street,
		"player", p.Position,
		"action", t,
		"amount", amount,
		"added_to_pot", added,
		"stack", p.Stack)

	h.nextPlayer()

	h.logger.Debug("Turn moved",
		"street", h.street,
		"to_act", h.current,
		"total_to_call", h.TotalAmountToCall(),
		"pot", h.totalPot,
		"central_pot", h.CentralPot())
	return nil
}

// RemoveLastAction pops the most recent action and restores the state from
// before it was applied.
func (h *HandHistory) RemoveLastAction() error {
	n := len(h.actions)
	if n == 0 {
		return ErrNoActions
	}
	action := h.actions[n-1]
	p, ok := h.PlayerByPosition(action.Player)
	if !ok {
		return fmt.Errorf("%w: action by unknown seat %s", ErrInvalidDocument, action.Player)
	}

	h.actions = h.actions[:n-1]
	p.actions = p.actions[:len(p.actions)-1]
	p.Stack = p.Stack.Add(action.AddedToPot)
	h.totalPot = h.totalPot.Sub(action.AddedToPot)
	h.restore(h.undo[n-1])
	h.undo = h.undo[:n-1]

	h.logger.Debug("Action removed", "n", n, "player", action.Player, "action", action.Type)
	return nil
}

func (h *HandHistory) snapshot() turnState {
	return turnState{
		street:         h.street,
		current:        h.current,
		winner:         h.winner,
		largestBlind:   h.largestBlind,
		blindsPosted:   h.blindsPosted,
		headsUpFlipped: h.headsUpFlipped,
	}
}

func (h *HandHistory) restore(s turnState) {
	h.street = s.street
	h.current = s.current
	h.winner = s.winner
	h.largestBlind = s.largestBlind
	h.blindsPosted = s.blindsPosted
	h.headsUpFlipped = s.headsUpFlipped
}

// PossibleActionTypes lists the action types the current player may take.
func (h *HandHistory) PossibleActionTypes() []ActionType {
	p := h.current
	if p == nil {
		return nil
	}
	actions := []ActionType{Fold}
	toCall := h.CurrentPlayerAmountToCall()
	if toCall.IsZero() {
		actions = append(actions, Check)
		if p.Stack.GreaterThanOrEqual(h.cfg.bigBlind) {
			actions = append(actions, Bet)
		}
		if p.Stack.GreaterThanOrEqual(h.MinimumRaise()) {
			actions = append(actions, Raise)
		}
		return actions
	}
	actions = append(actions, Call)
	if p.Stack.GreaterThan(toCall) && p.Stack.GreaterThan(h.MinimumRaise()) {
		actions = append(actions, Raise)
	}
	return actions
}

// TotalAmountToCall is the street investment every player has to match.
func (h *HandHistory) TotalAmountToCall() decimal.Decimal {
	total := decimal.Zero
	if h.street == PreFlop {
		total = h.largestBlind
	}
	for i := len(h.actions) - 1; i >= 0; i-- {
		a := h.actions[i]
		if a.Street != h.street {
			break
		}
		switch a.Type {
		case Raise:
			total = total.Add(a.Amount)
		case Bet:
			return total.Add(a.Amount)
		}
	}
	if h.street == PreFlop {
		total = decimal.Max(total, h.largestBlind)
	}
	return total
}

// MinimumRaise is the size of the last bet, raise, big blind or straddle of
// the street, or the big blind on an empty street.
func (h *HandHistory) MinimumRaise() decimal.Decimal {
	for i := len(h.actions) - 1; i >= 0; i-- {
		a := h.actions[i]
		if a.Street != h.street {
			break
		}
		switch a.Type {
		case Bet, Raise, PostBigBlind, Straddle:
			return a.Amount
		}
	}
	return h.cfg.bigBlind
}

// CurrentPlayerStreetBet is what the current player put in on this street.
func (h *HandHistory) CurrentPlayerStreetBet() decimal.Decimal {
	if h.current == nil {
		return decimal.Zero
	}
	return h.current.StreetBet(h.street)
}

// CurrentPlayerAmountToCall never asks for more than the player's stack.
func (h *HandHistory) CurrentPlayerAmountToCall() decimal.Decimal {
	if h.current == nil {
		return decimal.Zero
	}
	owed := h.TotalAmountToCall().Sub(h.CurrentPlayerStreetBet())
	return decimal.Max(decimal.Min(owed, h.current.Stack), decimal.Zero)
}

// CentralPot is the pot without the bets of the current street.
func (h *HandHistory) CentralPot() decimal.Decimal {
	pot := h.totalPot
	for _, p := range h.players {
		pot = pot.Sub(p.StreetBet(h.street))
	}
	return pot
}

// EditableActions are the actions that are not forced bets.
func (h *HandHistory) EditableActions() []Action {
	var actions []Action
	for _, a := range h.actions {
		if !a.Type.IsForced() {
			actions = append(actions, a)
		}
	}
	return actions
}

func (h *HandHistory) HasEditableActions() bool {
	return len(h.EditableActions()) > 0
}

// PseudoActions counts the board reveals still pending after the last action,
// used to pace a replay through the turn and river.
func (h *HandHistory) PseudoActions() int {
	last, ok := h.LastAction()
	if !ok {
		return 0
	}
	return int(River) - int(last.Street)
}

// PlayLength is the number of steps of a replay: the deal, the flop reveal,
// every editable action and the pending reveals.
func (h *HandHistory) PlayLength() int {
	return 2 + len(h.EditableActions()) + h.PseudoActions()
}
