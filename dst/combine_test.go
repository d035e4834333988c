package dst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sensors builds the two bodies of evidence used throughout: one source
// pointing at A, one at B, both leaving the rest to ignorance.
func sensors(t *testing.T) (*Universe[string], *Evidence[string], *Evidence[string]) {
	t.Helper()
	u := newABC(t)

	e1 := u.NewEvidence()
	require.NoError(t, e1.AddFocalSet(0.6, []string{"A"}))
	e1.AddOmegaSet()

	e2 := u.NewEvidence()
	require.NoError(t, e2.AddFocalSet(0.8, []string{"B"}))
	e2.AddOmegaSet()

	return u, e1, e2
}

func TestCombine_Scenario(t *testing.T) {
	u, e1, e2 := sensors(t)

	combined, conflict, err := e1.CombineWithConflict(e2)
	require.NoError(t, err)
	assert.InDelta(t, 0.48, conflict, tolerance)

	fs := combined.FocalSets()
	require.Len(t, fs, 3)
	assert.Equal(t, SetOf(0), fs[0].Subset)
	assert.InDelta(t, 0.12/0.52, fs[0].Mass, tolerance)
	assert.Equal(t, SetOf(1), fs[1].Subset)
	assert.InDelta(t, 0.32/0.52, fs[1].Mass, tolerance)
	assert.Equal(t, u.Omega(), fs[2].Subset)
	assert.InDelta(t, 0.08/0.52, fs[2].Mass, tolerance)

	assert.InDelta(t, 0.2308, fs[0].Mass, 1e-4)
	assert.InDelta(t, 0.6154, fs[1].Mass, 1e-4)
	assert.InDelta(t, 0.1538, fs[2].Mass, 1e-4)
	assert.InDelta(t, 1.0, combined.TotalMass(), tolerance)
	assert.Same(t, u, combined.Universe())
}

func TestCombine_DoesNotMutateOperands(t *testing.T) {
	_, e1, e2 := sensors(t)
	before1, before2 := e1.FocalSets(), e2.FocalSets()

	_, err := e1.Combine(e2)
	require.NoError(t, err)

	assert.Equal(t, before1, e1.FocalSets())
	assert.Equal(t, before2, e2.FocalSets())
}

func TestCombine_Commutative(t *testing.T) {
	_, e1, e2 := sensors(t)

	ab, err := e1.Combine(e2)
	require.NoError(t, err)
	ba, err := e2.Combine(e1)
	require.NoError(t, err)

	mab, mba := massBySubset(ab), massBySubset(ba)
	require.Len(t, mba, len(mab))
	for s, m := range mab {
		assert.InDelta(t, m, mba[s], tolerance, "subset %s", s)
	}
}

func TestCombine_ConflictMatchesCombination(t *testing.T) {
	u := newABC(t)
	e1 := u.NewEvidence()
	require.NoError(t, e1.AddFocalSet(0.5, []string{"A"}))
	require.NoError(t, e1.AddFocalSet(0.3, []string{"B", "C"}))
	e1.AddOmegaSet()

	e2 := u.NewEvidence()
	require.NoError(t, e2.AddFocalSet(0.4, []string{"B"}))
	require.NoError(t, e2.AddFocalSet(0.4, []string{"A", "C"}))
	e2.AddOmegaSet()

	_, inside, err := e1.CombineWithConflict(e2)
	require.NoError(t, err)
	alone, err := e1.Conflict(e2)
	require.NoError(t, err)

	assert.Equal(t, inside, alone)
	assert.InDelta(t, 0.5*0.4, alone, tolerance)
}

func TestCombine_KeepsDuplicateCandidates(t *testing.T) {
	u := newABC(t)
	e1 := u.NewEvidence()
	require.NoError(t, e1.AddFocalSet(0.5, []string{"A", "B"}))
	require.NoError(t, e1.AddFocalSet(0.5, []string{"A", "C"}))

	e2 := u.NewEvidence()
	require.NoError(t, e2.AddFocalSet(1, []string{"A"}))

	combined, err := e1.Combine(e2)
	require.NoError(t, err)
	assert.Equal(t, 2, combined.Len())
	assert.InDelta(t, 1.0, combined.Belief(SetOf(0)), tolerance)
	assert.Equal(t, 1, combined.Merged().Len())
}

func TestCombine_TotalConflict(t *testing.T) {
	u := newABC(t)
	e1 := u.NewEvidence()
	require.NoError(t, e1.AddFocalSet(1, []string{"A"}))
	e2 := u.NewEvidence()
	require.NoError(t, e2.AddFocalSet(1, []string{"B"}))

	_, err := e1.Combine(e2)
	assert.ErrorIs(t, err, ErrTotalConflict)

	_, conflict, err := e1.CombineWithConflict(e2)
	assert.ErrorIs(t, err, ErrTotalConflict)
	assert.InDelta(t, 1.0, conflict, tolerance)

	c, err := e1.Conflict(e2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c, tolerance)
}

func TestCombine_UniverseMismatch(t *testing.T) {
	_, e1, _ := sensors(t)
	other := newABC(t)
	e3 := other.NewEvidence()
	e3.AddOmegaSet()

	_, err := e1.Combine(e3)
	assert.ErrorIs(t, err, ErrUniverseMismatch)
	_, err = e1.Conflict(e3)
	assert.ErrorIs(t, err, ErrUniverseMismatch)
	_, err = e1.Combine(nil)
	assert.ErrorIs(t, err, ErrUniverseMismatch)
}

func TestCombine_WithVacuousEvidence(t *testing.T) {
	u, e1, _ := sensors(t)
	vacuous := u.NewEvidence()
	vacuous.AddOmegaSet()

	combined, conflict, err := e1.CombineWithConflict(vacuous)
	require.NoError(t, err)
	assert.Equal(t, 0.0, conflict)

	want, got := massBySubset(e1), massBySubset(combined)
	require.Len(t, got, len(want))
	for s, m := range want {
		assert.InDelta(t, m, got[s], tolerance)
	}
}
