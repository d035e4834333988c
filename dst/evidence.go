package dst

import (
	"fmt"
	"math"
)

// FocalSet is mass assigned to exactly one subset of the frame.
type FocalSet struct {
	Mass   float64
	Subset Set
}

// Evidence is a body of evidence bound to one Universe. Focal sets are kept
// in insertion order and never folded implicitly.
type Evidence[H comparable] struct {
	universe *Universe[H]
	focal    []FocalSet
}

// Universe returns the universe the evidence was minted from.
func (e *Evidence[H]) Universe() *Universe[H] {
	return e.universe
}

// Len returns the number of focal sets.
func (e *Evidence[H]) Len() int {
	return len(e.focal)
}

// FocalSets returns a copy of the focal sets in insertion order.
func (e *Evidence[H]) FocalSets() []FocalSet {
	out := make([]FocalSet, len(e.focal))
	copy(out, e.focal)
	return out
}

// TotalMass returns the sum of all assigned masses.
func (e *Evidence[H]) TotalMass() float64 {
	var used float64
	for _, f := range e.focal {
		used += f.Mass
	}
	return used
}

// AddFocalSet assigns mass to the subset formed by members. Members the
// universe does not know are dropped.
func (e *Evidence[H]) AddFocalSet(mass float64, members []H) error {
	if err := checkMass(mass); err != nil {
		return err
	}
	e.focal = append(e.focal, FocalSet{Mass: mass, Subset: e.universe.Resolve(members)})
	return nil
}

// AddFocalSubset assigns mass to an already resolved subset. Positions
// beyond the registered hypotheses are cleared.
func (e *Evidence[H]) AddFocalSubset(mass float64, subset Set) error {
	if err := checkMass(mass); err != nil {
		return err
	}
	e.focal = append(e.focal, FocalSet{Mass: mass, Subset: subset & e.universe.Omega()})
	return nil
}

// AddOmegaSet assigns the mass not yet distributed to the set of all
// registered hypotheses. It does nothing once the total reaches 1.
func (e *Evidence[H]) AddOmegaSet() {
	used := e.TotalMass()
	if used < 1.0 {
		e.focal = append(e.focal, FocalSet{Mass: 1.0 - used, Subset: e.universe.Omega()})
	}
}

// Merged returns a copy of e where focal sets with identical subsets are
// folded into one, keeping the position of the first occurrence.
func (e *Evidence[H]) Merged() *Evidence[H] {
	out := e.universe.NewEvidence()
	index := make(map[Set]int, len(e.focal))
	for _, f := range e.focal {
		if i, ok := index[f.Subset]; ok {
			out.focal[i].Mass += f.Mass
			continue
		}
		index[f.Subset] = len(out.focal)
		out.focal = append(out.focal, f)
	}
	return out
}

// Discount weakens e by a source reliability in [0, 1]: every mass is
// scaled by reliability and the withdrawn mass is assigned to Omega.
// A reliability of 1 returns an equivalent copy of e.
func (e *Evidence[H]) Discount(reliability float64) (*Evidence[H], error) {
	if math.IsNaN(reliability) || reliability < 0 || reliability > 1 {
		return nil, fmt.Errorf("reliability %v: %w", reliability, ErrInvalidMass)
	}

	out := e.universe.NewEvidence()
	out.focal = make([]FocalSet, 0, len(e.focal)+1)
	for _, f := range e.focal {
		out.focal = append(out.focal, FocalSet{Mass: f.Mass * reliability, Subset: f.Subset})
	}
	if withdrawn := e.TotalMass() * (1 - reliability); withdrawn > 0 {
		out.focal = append(out.focal, FocalSet{Mass: withdrawn, Subset: e.universe.Omega()})
	}
	return out, nil
}

func checkMass(mass float64) error {
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass < 0 || mass > 1 {
		return fmt.Errorf("mass %v: %w", mass, ErrInvalidMass)
	}
	return nil
}
