package tree

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the structure and payload of the nodes reachable from
// the root. Structurally equal trees have equal fingerprints regardless of
// arena layout or labels.
func (t *Tree) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 32)
	for id := range t.Preorder() {
		n := &t.nodes[id]
		buf = buf[:0]
		buf = append(buf, byte(n.op), byte(len(n.children)))
		switch n.op {
		case OpConstant:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(n.value))
		case OpVariable:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(n.weight))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(n.name)))
		}
		_, _ = d.Write(buf)
		if n.op == OpVariable {
			_, _ = d.WriteString(n.name)
		}
	}
	return d.Sum64()
}
