package game

import (
	"fmt"
	"maps"
)

// AtAction returns an independent hand truncated after cursor non-forced
// actions. It replays them against a fresh hand with the same configuration,
// so the receiver is never modified. A negative cursor returns the hand before
// any forced bet was posted; a cursor past the end returns a full copy.
func (h *HandHistory) AtAction(cursor int) (*HandHistory, error) {
	replay := newHandHistory(h.cfg)
	replay.extra = maps.Clone(h.extra)
	replay.logger = h.logger.With("replay", cursor)
	if cursor < 0 || !h.blindsPosted {
		return replay, nil
	}
	if err := replay.PostBlindsAndAntes(); err != nil {
		return nil, fmt.Errorf("replay forced bets: %w", err)
	}
	for i, a := range h.EditableActions() {
		if i >= cursor {
			break
		}
		if err := replay.AddAction(a.Type, a.Amount); err != nil {
			return nil, fmt.Errorf("replay action %d (%s %s): %w", i+1, a.Player, a.Type, err)
		}
	}
	return replay, nil
}

// Clone returns an independent copy of the hand.
func (h *HandHistory) Clone() (*HandHistory, error) {
	return h.AtAction(len(h.EditableActions()))
}
