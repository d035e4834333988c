package dst

import "fmt"

// Universe is the frame of discernment: an ordered registry of hypothesis
// ids, each bound to the bit position equal to its registration index.
type Universe[H comparable] struct {
	ids       []H
	positions map[H]int
}

func NewUniverse[H comparable]() *Universe[H] {
	return &Universe[H]{positions: make(map[H]int)}
}

// Register assigns the next free positions to ids not yet in the universe,
// in slice order. Known ids and repeats within ids are ignored, so calling
// Register again with the same ids is a no-op. If the new ids do not fit
// into MaxHypotheses nothing is registered and ErrCapacityExceeded is
// returned.
func (u *Universe[H]) Register(ids []H) error {
	fresh := make([]H, 0, len(ids))
	seen := make(map[H]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := u.positions[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		fresh = append(fresh, id)
	}

	if len(u.ids)+len(fresh) > MaxHypotheses {
		return fmt.Errorf("register %d hypotheses into universe of %d: %w", len(fresh), len(u.ids), ErrCapacityExceeded)
	}

	for _, id := range fresh {
		u.positions[id] = len(u.ids)
		u.ids = append(u.ids, id)
	}
	return nil
}

// Len returns the number of registered hypotheses.
func (u *Universe[H]) Len() int {
	return len(u.ids)
}

// Resolve maps ids to their frame subset. Unknown ids produce no bit.
func (u *Universe[H]) Resolve(ids []H) Set {
	var s Set
	for _, id := range ids {
		if p, ok := u.positions[id]; ok {
			s = s.With(p)
		}
	}
	return s
}

// Position returns the bit position of id.
func (u *Universe[H]) Position(id H) (int, bool) {
	p, ok := u.positions[id]
	return p, ok
}

// IDAt returns the hypothesis registered at position p.
func (u *Universe[H]) IDAt(p int) (H, error) {
	if p < 0 || p >= len(u.ids) {
		var zero H
		return zero, fmt.Errorf("position %d of %d: %w", p, len(u.ids), ErrOutOfRange)
	}
	return u.ids[p], nil
}

// Hypotheses returns the registered ids in position order.
func (u *Universe[H]) Hypotheses() []H {
	out := make([]H, len(u.ids))
	copy(out, u.ids)
	return out
}

// Omega returns the set of every registered hypothesis.
func (u *Universe[H]) Omega() Set {
	return fullSet(len(u.ids))
}

// Members translates s back into ids, in position order. Positions without
// a registered hypothesis are skipped.
func (u *Universe[H]) Members(s Set) []H {
	out := make([]H, 0, s.Len())
	for _, p := range s.Positions() {
		if p < len(u.ids) {
			out = append(out, u.ids[p])
		}
	}
	return out
}

// NewEvidence returns an empty body of evidence bound to u.
func (u *Universe[H]) NewEvidence() *Evidence[H] {
	return &Evidence[H]{universe: u}
}
