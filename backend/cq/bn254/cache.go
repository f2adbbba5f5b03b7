package cq

import (
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/consensys/compress/lzss"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"
)

// cacheFormatVersion is bumped whenever the on-disk PreprocessedTable
// layout changes incompatibly. It is independent of the fixed Proof wire
// format in proof.go: the cache is a local performance optimization
// (skip recomputing O(N log N) preprocessing), never exchanged between
// prover and verifier, so it is free to evolve without being
// byte-compatible across versions the way the proof format must be.
var cacheFormatVersion = semver.MustParse("1.0.0")

type cachedTable struct {
	FormatVersion string
	N             uint64
	ZV            []byte
	T2            []byte
	Qi            [][]byte
	Li            [][]byte
	LiQuotient    [][]byte
	IndexKeys     [][]byte
	IndexVals     []int
}

// WriteTo serializes the preprocessed table (cbor-encoded, then
// lzss-compressed) to w. The encoded table depends only on the table
// contents and the SRS, so it can be reused across any number of proving
// and verifying sessions against the same table.
func (pre *PreprocessedTable) WriteTo(w io.Writer) (int64, error) {
	raw, err := cborMarshalTable(pre)
	if err != nil {
		return 0, err
	}

	compressor, err := lzss.NewCompressor(nil)
	if err != nil {
		return 0, fmt.Errorf("cq: building cache compressor: %w", err)
	}
	compressed, err := compressor.Compress(raw)
	if err != nil {
		return 0, fmt.Errorf("cq: compressing cache: %w", err)
	}

	n, err := w.Write(compressed)
	return int64(n), err
}

// ReadPreprocessedTableFrom decodes a table previously written by
// WriteTo. It returns ErrCacheFormatMismatch if the blob was produced by
// an incompatible cache format version.
func ReadPreprocessedTableFrom(r io.Reader) (*PreprocessedTable, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw, err := lzss.Decompress(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("cq: decompressing cache: %w", err)
	}

	var ct cachedTable
	if err := cbor.Unmarshal(raw, &ct); err != nil {
		return nil, fmt.Errorf("cq: decoding cache: %w", err)
	}

	gotVersion, err := semver.Parse(ct.FormatVersion)
	if err != nil || gotVersion.Major != cacheFormatVersion.Major {
		return nil, ErrCacheFormatMismatch
	}

	return cachedTableToPreprocessed(&ct)
}

func cborMarshalTable(pre *PreprocessedTable) ([]byte, error) {
	ct := cachedTable{
		FormatVersion: cacheFormatVersion.String(),
		N:             pre.N,
		Qi:            make([][]byte, len(pre.Qi)),
		Li:            make([][]byte, len(pre.Li)),
		LiQuotient:    make([][]byte, len(pre.LiQuotient)),
		IndexKeys:     make([][]byte, 0, len(pre.index)),
		IndexVals:     make([]int, 0, len(pre.index)),
	}

	zv := pre.ZV.Bytes()
	ct.ZV = zv[:]
	t2 := pre.T2.Bytes()
	ct.T2 = t2[:]

	for i, p := range pre.Qi {
		b := p.Bytes()
		ct.Qi[i] = append([]byte(nil), b[:]...)
	}
	for i, p := range pre.Li {
		b := p.Bytes()
		ct.Li[i] = append([]byte(nil), b[:]...)
	}
	for i, p := range pre.LiQuotient {
		b := p.Bytes()
		ct.LiQuotient[i] = append([]byte(nil), b[:]...)
	}
	for k, v := range pre.index {
		kb := k.Bytes()
		ct.IndexKeys = append(ct.IndexKeys, append([]byte(nil), kb[:]...))
		ct.IndexVals = append(ct.IndexVals, v)
	}

	return cbor.Marshal(ct)
}

func cachedTableToPreprocessed(ct *cachedTable) (*PreprocessedTable, error) {
	pre := &PreprocessedTable{
		N:          ct.N,
		Qi:         make([]bn254.G1Affine, len(ct.Qi)),
		Li:         make([]bn254.G1Affine, len(ct.Li)),
		LiQuotient: make([]bn254.G1Affine, len(ct.LiQuotient)),
		index:      make(map[fr.Element]int, len(ct.IndexKeys)),
	}

	if _, err := pre.ZV.SetBytes(ct.ZV); err != nil {
		return nil, fmt.Errorf("cq: decoding cached Z_V: %w", err)
	}
	if _, err := pre.T2.SetBytes(ct.T2); err != nil {
		return nil, fmt.Errorf("cq: decoding cached table commitment: %w", err)
	}
	for i, b := range ct.Qi {
		if _, err := pre.Qi[i].SetBytes(b); err != nil {
			return nil, fmt.Errorf("cq: decoding cached Q_%d: %w", i, err)
		}
	}
	for i, b := range ct.Li {
		if _, err := pre.Li[i].SetBytes(b); err != nil {
			return nil, fmt.Errorf("cq: decoding cached L_%d: %w", i, err)
		}
	}
	for i, b := range ct.LiQuotient {
		if _, err := pre.LiQuotient[i].SetBytes(b); err != nil {
			return nil, fmt.Errorf("cq: decoding cached L_%d quotient: %w", i, err)
		}
	}
	for i, kb := range ct.IndexKeys {
		var key fr.Element
		key.SetBytes(kb)
		pre.index[key] = ct.IndexVals[i]
	}

	return pre, nil
}
