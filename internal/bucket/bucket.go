// Package bucket maps continuous brightness values onto named ranges.
//
// For boundaries b0 < b1 < ... < bn-1 there are n+1 buckets:
//
//	"<b0", "b0-b1", ..., "bn-2-bn-1", ">bn-1"
//
// Lower edges are inclusive: a value equal to bi lands in the bucket that
// starts at bi. The canonical order follows the boundaries, never string order.
package bucket

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrEmpty        = errors.New("boundary set is empty")
	ErrNotAscending = errors.New("boundaries must be strictly ascending")
)

// Boundaries is a validated, strictly ascending boundary set
type Boundaries struct {
	values []int
	order  []string
	index  map[string]int
}

// New validates values and precomputes the labels in canonical order
func New(values []int) (Boundaries, error) {
	if len(values) == 0 {
		return Boundaries{}, ErrEmpty
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return Boundaries{}, fmt.Errorf("%w: %d follows %d", ErrNotAscending, values[i], values[i-1])
		}
	}

	b := Boundaries{values: append([]int(nil), values...)}

	n := len(values)
	b.order = make([]string, 0, n+1)
	b.order = append(b.order, "<"+strconv.Itoa(values[0]))
	for i := 0; i < n-1; i++ {
		b.order = append(b.order, rangeLabel(values[i], values[i+1]))
	}
	b.order = append(b.order, ">"+strconv.Itoa(values[n-1]))

	b.index = make(map[string]int, len(b.order))
	for i, label := range b.order {
		b.index[label] = i
	}
	return b, nil
}

func rangeLabel(lo, hi int) string {
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}

// Values returns a copy of the boundary values
func (b Boundaries) Values() []int {
	return append([]int(nil), b.values...)
}

// Label returns the bucket name for v. NaN is unassigned and yields "".
func (b Boundaries) Label(v float64) string {
	if math.IsNaN(v) || len(b.values) == 0 {
		return ""
	}
	return b.order[b.position(v)]
}

// position returns the canonical index of the bucket holding v
func (b Boundaries) position(v float64) int {
	n := len(b.values)
	if v < float64(b.values[0]) {
		return 0
	}
	if v >= float64(b.values[n-1]) {
		return n
	}
	// Few boundaries in practice, a linear scan is fine
	for i := 0; i < n-1; i++ {
		if float64(b.values[i]) <= v && v < float64(b.values[i+1]) {
			return i + 1
		}
	}
	return n
}

// Order returns every label in canonical order, "<b0" first and ">bn-1" last
func (b Boundaries) Order() []string {
	return append([]string(nil), b.order...)
}

// Len is the number of buckets (boundaries + 1)
func (b Boundaries) Len() int {
	return len(b.order)
}

// Index returns the canonical position of label. Unknown labels, including
// the empty label, return Len() so they sort after every real bucket.
func (b Boundaries) Index(label string) int {
	if i, ok := b.index[label]; ok {
		return i
	}
	return len(b.order)
}

// Less orders two labels by canonical position
func (b Boundaries) Less(x, y string) bool {
	return b.Index(x) < b.Index(y)
}

// Compare is the three-way form of Less, for slices.SortStableFunc
func (b Boundaries) Compare(x, y string) int {
	return b.Index(x) - b.Index(y)
}

// Counts tallies labels per bucket in canonical order. Unknown labels are dropped.
func (b Boundaries) Counts(labels []string) []int {
	counts := make([]int, len(b.order))
	for _, label := range labels {
		if i, ok := b.index[label]; ok {
			counts[i]++
		}
	}
	return counts
}
