package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/shopspring/decimal"
)

// decimalTag is the key of the single-key object a decimal is encoded as.
const decimalTag = "decimal"

// Document keys owned by the engine. Anything else is carried through untouched.
const (
	keySmallBlind = "small_blind"
	keyBigBlind   = "big_blind"
	keyAnte       = "ante"
	keyBBAnte     = "bb_ante"
	keyStraddles  = "n_straddle"
	keyPlayers    = "players"
	keyActions    = "actions"
)

// derivedKeys were written by older tools and are recomputed on load.
var derivedKeys = map[string]bool{
	"current_street": true,
	"current_player": true,
	"total_pot":      true,
	"winner":         true,
	"largest_blind":  true,
	"_blinds_posted": true,
}

// Extra returns the caller-owned fields carried with the hand.
func (h *HandHistory) Extra() map[string]any {
	return maps.Clone(h.extra)
}

// SetExtra attaches a caller-owned field (names, seat metadata, ids) that is
// written with the hand and restored by FromMap.
func (h *HandHistory) SetExtra(key string, value any) {
	h.extra[key] = value
}

// ToMap converts the hand to plain nested maps and slices. Amounts are
// decimal.Decimal values.
func (h *HandHistory) ToMap() map[string]any {
	doc := maps.Clone(h.extra)
	if doc == nil {
		doc = make(map[string]any)
	}

	stacks := make([]any, len(h.players))
	for i, p := range h.players {
		stacks[i] = p.InitialStack
	}
	actions := make([]any, len(h.actions))
	for i, a := range h.actions {
		actions[i] = map[string]any{
			"type":   a.Type.String(),
			"amount": a.Amount,
		}
	}

	var bbAnte any
	if h.cfg.bbAnte.IsPositive() {
		bbAnte = h.cfg.bbAnte
	}

	doc[keySmallBlind] = h.cfg.smallBlind
	doc[keyBigBlind] = h.cfg.bigBlind
	doc[keyAnte] = h.cfg.ante
	doc[keyBBAnte] = bbAnte
	doc[keyStraddles] = h.cfg.straddles
	doc[keyPlayers] = stacks
	doc[keyActions] = actions
	return doc
}

// FromMap rebuilds a hand from a document produced by ToMap: the forced bets
// are posted again and every non-forced action is replayed.
func FromMap(doc map[string]any, opts ...Option) (*HandHistory, error) {
	smallBlind, err := amountField(doc, keySmallBlind, true)
	if err != nil {
		return nil, err
	}
	bigBlind, err := amountField(doc, keyBigBlind, true)
	if err != nil {
		return nil, err
	}
	ante, err := amountField(doc, keyAnte, false)
	if err != nil {
		return nil, err
	}
	bbAnte, err := amountField(doc, keyBBAnte, false)
	if err != nil {
		return nil, err
	}
	straddles, err := intField(doc, keyStraddles)
	if err != nil {
		return nil, err
	}

	rawStacks, ok := doc[keyPlayers].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a list of stacks", ErrInvalidDocument, keyPlayers)
	}
	stacks := make([]decimal.Decimal, len(rawStacks))
	for i, raw := range rawStacks {
		if stacks[i], err = toDecimal(raw); err != nil {
			return nil, fmt.Errorf("%w: stack %d: %v", ErrInvalidDocument, i+1, err)
		}
	}

	base := []Option{
		WithBlinds(smallBlind, bigBlind),
		WithAnte(ante),
		WithBBAnte(bbAnte),
		WithStraddles(straddles),
	}
	h, err := NewHandHistory(stacks, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := h.PostBlindsAndAntes(); err != nil {
		return nil, err
	}

	rawActions, _ := doc[keyActions].([]any)
	for i, raw := range rawActions {
		t, amount, err := parseDocumentAction(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: action %d: %v", ErrInvalidDocument, i+1, err)
		}
		if t.IsForced() {
			continue
		}
		if err := h.AddAction(t, amount); err != nil {
			return nil, fmt.Errorf("action %d (%s %s): %w", i+1, t, amount, err)
		}
	}

	for k, v := range doc {
		switch k {
		case keySmallBlind, keyBigBlind, keyAnte, keyBBAnte, keyStraddles, keyPlayers, keyActions:
			continue
		}
		if derivedKeys[k] {
			continue
		}
		h.extra[k] = v
	}
	return h, nil
}

// MarshalJSON encodes the hand document with every decimal tagged as
// {"decimal": "..."}.
func (h *HandHistory) MarshalJSON() ([]byte, error) {
	return json.Marshal(tagDecimals(h.ToMap()))
}

// FromJSON decodes a document written by MarshalJSON and replays it.
func FromJSON(data []byte, opts ...Option) (*HandHistory, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	doc, ok := untagDecimals(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidDocument)
	}
	return FromMap(doc, opts...)
}

func parseDocumentAction(raw any) (ActionType, decimal.Decimal, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return 0, decimal.Zero, fmt.Errorf("expected an object, got %T", raw)
	}
	label, ok := obj["type"].(string)
	if !ok {
		return 0, decimal.Zero, fmt.Errorf("missing action type")
	}
	t, err := ParseActionType(label)
	if err != nil {
		return 0, decimal.Zero, err
	}
	amount, err := amountField(obj, "amount", false)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return t, amount, nil
}

func amountField(doc map[string]any, key string, required bool) (decimal.Decimal, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		if required {
			return decimal.Zero, fmt.Errorf("%w: missing %q", ErrInvalidDocument, key)
		}
		return decimal.Zero, nil
	}
	d, err := toDecimal(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidDocument, key, err)
	}
	return d, nil
}

func intField(doc map[string]any, key string) (int, error) {
	switch v := doc[key].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDocument, key, err)
		}
		return int(n), nil
	case decimal.Decimal:
		return int(v.IntPart()), nil
	default:
		return 0, fmt.Errorf("%w: %q has type %T", ErrInvalidDocument, key, v)
	}
}

// toDecimal accepts a decimal, a {"decimal": "..."} tag, a numeric string, a
// json.Number or a Go number.
func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case map[string]any:
		s, ok := x[decimalTag].(string)
		if !ok || len(x) != 1 {
			return decimal.Zero, fmt.Errorf("not a tagged decimal: %v", x)
		}
		return decimal.NewFromString(s)
	case string:
		return decimal.NewFromString(x)
	case json.Number:
		return decimal.NewFromString(x.String())
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount type %T", v)
	}
}

func tagDecimals(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return map[string]any{decimalTag: x.String()}
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = tagDecimals(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = tagDecimals(e)
		}
		return out
	default:
		return v
	}
}

func untagDecimals(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if s, ok := x[decimalTag].(string); ok && len(x) == 1 {
			if d, err := decimal.NewFromString(s); err == nil {
				return d
			}
		}
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = untagDecimals(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = untagDecimals(e)
		}
		return out
	default:
		return v
	}
}
