package dst

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxHypotheses is the largest frame a Universe can hold.
const MaxHypotheses = 64

// Set is a subset of the frame of discernment. Bit i set means the
// hypothesis at position i is a member. The zero value is the empty set.
type Set uint64

// SetOf returns the set containing the given positions. Positions outside
// [0, MaxHypotheses) are ignored.
func SetOf(positions ...int) Set {
	var s Set
	for _, p := range positions {
		s = s.With(p)
	}
	return s
}

// fullSet returns the set of the first n positions.
func fullSet(n int) Set {
	if n >= MaxHypotheses {
		return ^Set(0)
	}
	return Set(1)<<uint(n) - 1
}

// Has reports whether position p is a member.
func (s Set) Has(p int) bool {
	if p < 0 || p >= MaxHypotheses {
		return false
	}
	return s&(1<<uint(p)) != 0
}

// With returns s with position p added.
func (s Set) With(p int) Set {
	if p < 0 || p >= MaxHypotheses {
		return s
	}
	return s | 1<<uint(p)
}

func (s Set) Intersect(o Set) Set {
	return s & o
}

func (s Set) Union(o Set) Set {
	return s | o
}

func (s Set) IsEmpty() bool {
	return s == 0
}

// Len returns the number of members.
func (s Set) Len() int {
	return bits.OnesCount64(uint64(s))
}

// SubsetOf reports whether every member of s is also a member of o.
// The empty set is a subset of every set.
func (s Set) SubsetOf(o Set) bool {
	return s&^o == 0
}

// Intersects reports whether s and o share at least one member.
func (s Set) Intersects(o Set) bool {
	return s&o != 0
}

// Positions returns the member positions in ascending order.
func (s Set) Positions() []int {
	out := make([]int, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		out = append(out, bits.TrailingZeros64(rest))
	}
	return out
}

func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range s.Positions() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(p))
	}
	b.WriteByte('}')
	return b.String()
}
