package cq

import (
	"encoding/binary"

	"github.com/ronanh/intcomp"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DumpIndex returns a compact, order-preserving encoding of every table
// position recorded in the value-to-index map, for operators who want to
// sanity-check a cache file's contents (e.g. "does this table actually
// contain the N distinct positions I expect") without decompressing and
// re-hashing the whole table. It is diagnostic only: nothing in Preprocess,
// Prove, or Verify reads this value back.
func (pre *PreprocessedTable) DumpIndex() []byte {
	indices := maps.Values(pre.index)
	asUint32 := make([]uint32, len(indices))
	for i, v := range indices {
		asUint32[i] = uint32(v)
	}
	slices.Sort(asUint32)

	packed := intcomp.CompressUint32(asUint32, nil)
	out := make([]byte, 4+4*len(packed))
	binary.LittleEndian.PutUint32(out, uint32(len(asUint32)))
	for i, w := range packed {
		binary.LittleEndian.PutUint32(out[4+4*i:], w)
	}
	return out
}
