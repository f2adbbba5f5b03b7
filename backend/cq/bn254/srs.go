package cq

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// SRS is the structured reference string: the powers of a secret s in G1
// and G2, [g1, g1*s, g1*s^2, ...] and [g2, g2*s, g2*s^2, ...].
//
// Both slices must have the same length and share the same secret s. A
// table of size N requires an SRS of length at least N+1 (§3 of the
// design: the G2 side alone needs srs_g2[N] for the vanishing-polynomial
// digest, and srs_g2[N-n+1] for the degree-bound check during
// verification).
//
// Production use must load an SRS produced by a real ceremony (e.g. the
// Perpetual Powers of Tau / KZG ceremony transcripts); NewDevSRS below is
// a toy in-process sampler for tests and development only.
type SRS struct {
	G1 []bn254.G1Affine
	G2 []bn254.G2Affine
}

// Size returns the number of points held per group (one more than the
// maximum committable polynomial degree).
func (srs *SRS) Size() int {
	return len(srs.G1)
}

// NewDevSRS samples a fresh secret s and derives an SRS of the given
// length. This is a development-mode generator only: s is discarded but
// briefly lives in process memory, which is unacceptable for any
// production deployment. Production callers should use LoadSRS against
// bytes produced by a real ceremony instead.
func NewDevSRS(size int) (*SRS, error) {
	var s fr.Element
	if _, err := s.SetRandom(); err != nil {
		return nil, err
	}
	return NewDevSRSFromSecret(s, size)
}

// NewDevSRSFromSecret derives an SRS of the given length from an
// explicitly supplied secret. Exposed so tests can build reproducible
// SRS instances; not for production use (the secret must be destroyed
// after a real ceremony, not passed around as a Go value).
func NewDevSRSFromSecret(s fr.Element, size int) (*SRS, error) {
	if size < 1 {
		return nil, ErrSRSTooSmall
	}
	_, _, g1Gen, g2Gen := bn254.Generators()

	powers := make([]fr.Element, size)
	powers[0].SetOne()
	for i := 1; i < size; i++ {
		powers[i].Mul(&powers[i-1], &s)
	}

	srs := &SRS{
		G1: make([]bn254.G1Affine, size),
		G2: make([]bn254.G2Affine, size),
	}
	for i := 0; i < size; i++ {
		var bi big.Int
		powers[i].BigInt(&bi)
		srs.G1[i].ScalarMultiplication(&g1Gen, &bi)
		srs.G2[i].ScalarMultiplication(&g2Gen, &bi)
	}
	return srs, nil
}

// SRSLoader loads an externally produced structured reference string.
// This is the interface production code should implement against the
// ceremony transcript format it trusts. This module ships no
// implementation of it; NewDevSRS above is the only SRS source it
// provides.
type SRSLoader interface {
	LoadSRS(r io.Reader, size int) (*SRS, error)
}
