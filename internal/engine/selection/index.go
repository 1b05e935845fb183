package selection

import "strconv"

// Index is an optional list position.
// The zero value is None.
type Index struct {
	value int
	valid bool
}

// None is the empty selection.
var None = Index{}

// At returns a valid Index for position i. Negative positions yield None.
func At(i int) Index {
	if i < 0 {
		return None
	}
	return Index{value: i, valid: true}
}

// Get returns the position and whether the index is valid.
func (x Index) Get() (int, bool) {
	return x.value, x.valid
}

// Valid reports whether the index refers to a position.
func (x Index) Valid() bool {
	return x.valid
}

// InRange reports whether the index is valid and below size.
func (x Index) InRange(size int) bool {
	return x.valid && x.value < size
}

// String returns the position, or "none".
func (x Index) String() string {
	if !x.valid {
		return "none"
	}
	return strconv.Itoa(x.value)
}
