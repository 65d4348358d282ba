package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   uint64
		want string
	}{
		{name: "zero", in: 0, want: "0000000000000000"},
		{name: "small", in: 0xabc, want: "0000000000000abc"},
		{name: "max", in: ^uint64(0), want: "ffffffffffffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HexID(tt.in)
			require.Equal(t, tt.want, got)
			require.Len(t, got, 16)
		})
	}
}
