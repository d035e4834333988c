package dst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOf(t *testing.T) {
	s := SetOf(0, 2, 63, 64, -1)
	assert.Equal(t, []int{0, 2, 63}, s.Positions())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "{0,2,63}", s.String())
	assert.Equal(t, "{}", Set(0).String())
}

func TestSetRelations(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Set
		subset     bool
		intersects bool
	}{
		{"empty in empty", 0, 0, true, false},
		{"empty in any", 0, SetOf(1), true, false},
		{"equal", SetOf(1, 2), SetOf(1, 2), true, true},
		{"strict subset", SetOf(1), SetOf(1, 2), true, true},
		{"superset", SetOf(1, 2), SetOf(1), false, true},
		{"disjoint", SetOf(0), SetOf(1), false, false},
		{"overlap", SetOf(0, 1), SetOf(1, 2), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.subset, tt.a.SubsetOf(tt.b))
			assert.Equal(t, tt.intersects, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.a&tt.b, tt.a.Intersect(tt.b))
			assert.Equal(t, tt.a|tt.b, tt.a.Union(tt.b))
		})
	}
}

func TestFullSet(t *testing.T) {
	assert.True(t, fullSet(0).IsEmpty())
	assert.Equal(t, SetOf(0, 1, 2), fullSet(3))
	assert.Equal(t, MaxHypotheses, fullSet(MaxHypotheses).Len())
	assert.True(t, fullSet(MaxHypotheses).Has(63))
	assert.False(t, fullSet(3).Has(3))
	assert.False(t, fullSet(3).Has(-1))
}
