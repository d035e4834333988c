package dst

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniverse_Register(t *testing.T) {
	u := NewUniverse[string]()
	require.NoError(t, u.Register([]string{"A", "B", "C"}))

	assert.Equal(t, 3, u.Len())
	assert.Equal(t, []string{"A", "B", "C"}, u.Hypotheses())
	for i, id := range []string{"A", "B", "C"} {
		p, ok := u.Position(id)
		assert.True(t, ok)
		assert.Equal(t, i, p)
	}
}

func TestUniverse_RegisterIsIdempotent(t *testing.T) {
	u := NewUniverse[string]()
	require.NoError(t, u.Register([]string{"A", "B", "A"}))
	require.NoError(t, u.Register([]string{"B", "C"}))

	assert.Equal(t, []string{"A", "B", "C"}, u.Hypotheses())
	p, _ := u.Position("C")
	assert.Equal(t, 2, p)
}

func TestUniverse_CapacityExceededOnSixtyFifth(t *testing.T) {
	u := NewUniverse[int]()
	for i := 0; i < MaxHypotheses; i++ {
		require.NoError(t, u.Register([]int{i}), "hypothesis %d", i)
	}

	err := u.Register([]int{MaxHypotheses})
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, MaxHypotheses, u.Len())

	// already registered ids still register fine at capacity
	assert.NoError(t, u.Register([]int{0, 1}))
}

func TestUniverse_CapacityFailureRegistersNothing(t *testing.T) {
	u := NewUniverse[string]()
	ids := make([]string, MaxHypotheses+1)
	for i := range ids {
		ids[i] = "h" + strconv.Itoa(i)
	}

	err := u.Register(ids)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 0, u.Len())

	require.NoError(t, u.Register(ids[:MaxHypotheses]))
	assert.Equal(t, MaxHypotheses, u.Len())
	assert.Equal(t, fullSet(MaxHypotheses), u.Omega())
}

func TestUniverse_ResolveDropsUnknown(t *testing.T) {
	u := NewUniverse[string]()
	require.NoError(t, u.Register([]string{"A", "B", "C"}))

	assert.Equal(t, SetOf(0, 2), u.Resolve([]string{"C", "A", "Z"}))
	assert.True(t, u.Resolve([]string{"X", "Y"}).IsEmpty())
	assert.True(t, u.Resolve(nil).IsEmpty())
}

func TestUniverse_IDAt(t *testing.T) {
	u := NewUniverse[string]()
	require.NoError(t, u.Register([]string{"A", "B"}))

	id, err := u.IDAt(1)
	require.NoError(t, err)
	assert.Equal(t, "B", id)

	for _, p := range []int{-1, 2, 64} {
		_, err := u.IDAt(p)
		assert.ErrorIs(t, err, ErrOutOfRange, "position %d", p)
	}
}

func TestUniverse_Members(t *testing.T) {
	u := NewUniverse[string]()
	require.NoError(t, u.Register([]string{"A", "B", "C"}))

	assert.Equal(t, []string{"A", "C"}, u.Members(SetOf(2, 0, 9)))
	assert.Equal(t, []string{"A", "B", "C"}, u.Members(u.Omega()))
	assert.Empty(t, u.Members(0))
}

func TestUniverse_HypothesesIsCopy(t *testing.T) {
	u := NewUniverse[string]()
	require.NoError(t, u.Register([]string{"A"}))

	hs := u.Hypotheses()
	hs[0] = "mutated"
	id, _ := u.IDAt(0)
	assert.Equal(t, "A", id)
}

type sensor struct{ name string }

func TestUniverse_PointerIdentity(t *testing.T) {
	a, b := &sensor{"a"}, &sensor{"a"}
	u := NewUniverse[*sensor]()
	require.NoError(t, u.Register([]*sensor{a, b}))

	assert.Equal(t, 2, u.Len())
	assert.Equal(t, SetOf(1), u.Resolve([]*sensor{b}))
}
