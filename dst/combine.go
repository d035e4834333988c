package dst

import "fmt"

// totalConflictEpsilon is how close to 1 the conflict may get before the
// normalization factor is treated as undefined.
const totalConflictEpsilon = 1e-12

// Combine fuses e and other with Dempster's rule of combination and returns
// the result as new evidence. Neither operand is modified.
func (e *Evidence[H]) Combine(other *Evidence[H]) (*Evidence[H], error) {
	combined, _, err := e.CombineWithConflict(other)
	return combined, err
}

// CombineWithConflict is Combine that also returns the conflict mass that
// was discarded during normalization.
func (e *Evidence[H]) CombineWithConflict(other *Evidence[H]) (*Evidence[H], float64, error) {
	if err := e.sameUniverse(other); err != nil {
		return nil, 0, err
	}

	candidates := make([]FocalSet, 0, len(e.focal)*len(other.focal))
	conflict := e.pairwise(other, func(f FocalSet) {
		candidates = append(candidates, f)
	})

	if 1-conflict <= totalConflictEpsilon {
		return nil, conflict, fmt.Errorf("conflict %v: %w", conflict, ErrTotalConflict)
	}

	scale := 1.0 / (1.0 - conflict)
	for i := range candidates {
		candidates[i].Mass *= scale
	}

	out := e.universe.NewEvidence()
	out.focal = candidates
	return out, conflict, nil
}

// Conflict returns the mass Dempster's rule would assign to the empty set
// when combining e with other.
func (e *Evidence[H]) Conflict(other *Evidence[H]) (float64, error) {
	if err := e.sameUniverse(other); err != nil {
		return 0, err
	}
	return e.pairwise(other, nil), nil
}

// pairwise intersects every focal set of e with every focal set of other.
// Non-empty intersections are passed to keep; the mass of empty ones is
// summed and returned.
func (e *Evidence[H]) pairwise(other *Evidence[H], keep func(FocalSet)) float64 {
	var conflict float64
	for _, f := range e.focal {
		for _, g := range other.focal {
			joint := FocalSet{Mass: f.Mass * g.Mass, Subset: f.Subset & g.Subset}
			if joint.Subset.IsEmpty() {
				conflict += joint.Mass
				continue
			}
			if keep != nil {
				keep(joint)
			}
		}
	}
	return conflict
}

func (e *Evidence[H]) sameUniverse(other *Evidence[H]) error {
	if other == nil || e.universe != other.universe {
		return ErrUniverseMismatch
	}
	return nil
}
