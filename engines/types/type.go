package types

// Type identifies an evaluation engine.
type Type string

const (
	// Scalar evaluates a compiled program one row at a time.
	Scalar Type = "scalar"

	// Vector evaluates a compiled program over every row at once with
	// data-parallel kernels.
	Vector Type = "vector"
)

// Types lists every known engine.
var Types = []Type{Scalar, Vector}

func (t Type) String() string {
	return string(t)
}

// Valid reports whether t names a known engine.
func (t Type) Valid() bool {
	switch t {
	case Scalar, Vector:
		return true
	}
	return false
}
