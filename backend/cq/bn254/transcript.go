package cq

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Transcript implements the Fiat-Shamir transformation used to make the
// three-round cq protocol non-interactive. It absorbs commitments and
// field elements into a running SHA-256 chain and, on demand, derives a
// batch of deterministic field-element challenges from the chain's
// current state.
//
// This mirrors the shape of github.com/consensys/gnark-crypto/fiat-shamir
// (absorb-then-challenge, misuse of challenge-without-absorb is a hard
// error) but matches cq's own wire algorithm exactly: a single rolling
// digest rather than one chain per named challenge, and a challenge draw
// that can produce more than one field element per call.
type Transcript struct {
	state []byte // nil before the first absorb
	dirty bool   // true once a value has been absorbed since the last challenge
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// AbsorbCommitmentsG1 folds a list of G1 points into the transcript state:
// state' = SHA256(state || uncompressed(items[0]) || uncompressed(items[1]) || ...).
func (t *Transcript) AbsorbCommitmentsG1(items ...bn254.G1Affine) {
	h := sha256.New()
	h.Write(t.state)
	for _, p := range items {
		b := p.RawBytes()
		h.Write(b[:])
	}
	t.state = h.Sum(nil)
	t.dirty = true
}

// AbsorbField folds a list of field elements into the transcript state,
// analogous to AbsorbCommitmentsG1.
func (t *Transcript) AbsorbField(items ...fr.Element) {
	h := sha256.New()
	h.Write(t.state)
	for _, e := range items {
		b := e.Bytes()
		h.Write(b[:])
	}
	t.state = h.Sum(nil)
	t.dirty = true
}

// Challenge draws k independent, deterministic field elements from the
// current transcript state. It requires that something was absorbed
// since the last challenge (the dirty flag): calling Challenge twice in a
// row without an intervening Absorb is a protocol misuse and returns
// ErrTranscriptMisuse, not a silently-reused challenge — this guard is a
// soundness property, not a style preference.
func (t *Transcript) Challenge(k int) ([]fr.Element, error) {
	if !t.dirty {
		return nil, ErrTranscriptMisuse
	}
	if len(t.state) < 8 {
		// only reachable if Challenge is called before any Absorb ever
		// happened, which dirty==false already guards against.
		return nil, ErrTranscriptMisuse
	}

	seed := int64(binary.LittleEndian.Uint64(t.state[:8]))
	rng := rand.New(rand.NewSource(seed))

	out := make([]fr.Element, k)
	var buf [fr.Bytes]byte
	for i := 0; i < k; i++ {
		if _, err := rng.Read(buf[:]); err != nil {
			return nil, err
		}
		out[i].SetBytes(buf[:])
	}

	t.dirty = false
	return out, nil
}
