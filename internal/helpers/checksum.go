package helpers

import "fmt"

// HexID renders a 64-bit hash as a fixed-width, 16-character hex string.
func HexID(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
