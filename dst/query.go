package dst

// Belief returns Bel(query): the mass of every non-empty focal set contained
// in query. Belief of the empty set is 0.
func (e *Evidence[H]) Belief(query Set) float64 {
	var bel float64
	for _, f := range e.focal {
		if !f.Subset.IsEmpty() && f.Subset.SubsetOf(query) {
			bel += f.Mass
		}
	}
	return bel
}

// Plausibility returns Pl(query): the mass of every focal set sharing at
// least one hypothesis with query.
func (e *Evidence[H]) Plausibility(query Set) float64 {
	var pl float64
	for _, f := range e.focal {
		if f.Subset.Intersects(query) {
			pl += f.Mass
		}
	}
	return pl
}

// BeliefOf is Belief for a set of ids resolved against the universe.
func (e *Evidence[H]) BeliefOf(ids []H) float64 {
	return e.Belief(e.universe.Resolve(ids))
}

// PlausibilityOf is Plausibility for a set of ids resolved against the universe.
func (e *Evidence[H]) PlausibilityOf(ids []H) float64 {
	return e.Plausibility(e.universe.Resolve(ids))
}

// Score is the singleton belief and plausibility of one hypothesis.
type Score[H comparable] struct {
	ID           H
	Position     int
	Belief       float64
	Plausibility float64
}

// Scores returns the singleton belief and plausibility of every registered
// hypothesis in position order.
func (e *Evidence[H]) Scores() []Score[H] {
	out := make([]Score[H], len(e.universe.ids))
	for j, id := range e.universe.ids {
		s := Score[H]{ID: id, Position: j}
		for _, f := range e.focal {
			if !f.Subset.Has(j) {
				continue
			}
			s.Plausibility += f.Mass
			if f.Subset.Len() == 1 {
				s.Belief += f.Mass
			}
		}
		out[j] = s
	}
	return out
}

// MostBelievable returns the hypothesis with the largest singleton belief.
// Ties go to the lowest position.
func (e *Evidence[H]) MostBelievable() (H, error) {
	return e.decide(func(s, best Score[H]) bool {
		return s.Belief > best.Belief
	})
}

// MostPlausible returns the hypothesis with the largest singleton
// plausibility. Ties go to the lowest position.
func (e *Evidence[H]) MostPlausible() (H, error) {
	return e.decide(func(s, best Score[H]) bool {
		return s.Plausibility > best.Plausibility
	})
}

// BestMatch returns the hypothesis with the largest singleton belief,
// preferring higher plausibility among equal beliefs. Remaining ties go to
// the lowest position.
func (e *Evidence[H]) BestMatch() (H, error) {
	return e.decide(func(s, best Score[H]) bool {
		return s.Belief > best.Belief ||
			(s.Belief == best.Belief && s.Plausibility > best.Plausibility)
	})
}

// decide scans the scores in position order and keeps the first candidate
// that no later score beats.
func (e *Evidence[H]) decide(beats func(s, best Score[H]) bool) (H, error) {
	scores := e.Scores()
	if len(scores) == 0 {
		var zero H
		return zero, ErrEmptyUniverse
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if beats(s, best) {
			best = s
		}
	}
	return best.ID, nil
}
