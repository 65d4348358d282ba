package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ   Type
		str   string
		valid bool
	}{
		{Scalar, "scalar", true},
		{Vector, "vector", true},
		{Type("gpu"), "gpu", false},
		{Type(""), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.typ.String())
			assert.Equal(t, tt.valid, tt.typ.Valid())
		})
	}
	assert.Len(t, Types, 2)
}
