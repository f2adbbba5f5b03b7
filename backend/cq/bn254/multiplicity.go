package cq

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// multiplicityEntry is one nonzero coefficient of the sparse multiplicity
// polynomial m(X): table position Index occurs Count times in the witness.
type multiplicityEntry struct {
	Index uint64
	Count uint64
}

// buildMultiplicities locates every witness value in the preprocessed
// table and tallies how many times each table position is hit. The
// witness never has more than n distinct values, so the result has at
// most n entries regardless of how large the table N is — this is what
// lets the prover's subsequent A(X)/Q_A(X) commitments stay O(n) instead
// of O(N). touched is a size-N bitset used only to give the caller a
// cheap way to tell "never hit" positions apart from "hit with count
// that happens to be zero" (which cannot occur, but the bitset keeps the
// accounting explicit rather than relying on map-zero-value semantics).
func buildMultiplicities(table *PreprocessedTable, witness []fr.Element) ([]multiplicityEntry, *bitset.BitSet, error) {
	counts := make(map[uint64]uint64, len(witness))
	touched := bitset.New(uint(table.N))

	for _, w := range witness {
		idx, ok := table.index[w]
		if !ok {
			return nil, nil, ErrWitnessNotInTable
		}
		counts[uint64(idx)]++
		touched.Set(uint(idx))
	}

	keys := maps.Keys(counts)
	slices.Sort(keys)

	entries := make([]multiplicityEntry, len(keys))
	for i, k := range keys {
		entries[i] = multiplicityEntry{Index: k, Count: counts[k]}
	}
	return entries, touched, nil
}
