// Package cq is the curve-selecting facade over this module's cq lookup
// argument implementations. It re-exports the bn254 instantiation under
// curve-neutral names through type aliases and forwarding functions;
// there is no per-curve dispatch, so every name here is bound to bn254.
package cq

import (
	bn254impl "github.com/arcadelab/cq/backend/cq/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is this facade's scalar field element type: BN254's Fr,
// re-exported so callers building witnesses and tables don't need to
// import gnark-crypto directly for the common case of a single curve.
type Element = fr.Element

// SRS is the structured reference string powering both preprocessing and
// proving/verifying on the BN254 curve.
type SRS = bn254impl.SRS

// PreprocessedTable holds the table-dependent, witness-independent
// proving and verifying material produced by Preprocess.
type PreprocessedTable = bn254impl.PreprocessedTable

// Witness is the vector of values a Proof claims are all contained in
// the preprocessed table.
type Witness = bn254impl.Witness

// Proof is a complete, self-contained cq membership proof.
type Proof = bn254impl.Proof

// VerificationReport exposes the individual pairing/scalar checks Verify
// runs, for diagnosing a broken prover rather than for production use.
type VerificationReport = bn254impl.VerificationReport

// NewDevSRS samples a throwaway SRS for tests and local development. Do
// not use it for anything whose soundness matters: production callers
// must load an SRS from a real trusted-setup ceremony transcript.
func NewDevSRS(size int) (*SRS, error) {
	return bn254impl.NewDevSRS(size)
}

// Preprocess computes the table-dependent preprocessing material for t
// (length a power of two) against srs.
func Preprocess(srs *SRS, t []Element) (*PreprocessedTable, error) {
	return bn254impl.Preprocess(srs, t)
}

// Prove builds a membership proof that every value in witness.F appears
// in table, using pre (produced by a prior Preprocess(srs, table) call).
func Prove(srs *SRS, pre *PreprocessedTable, table []Element, witness Witness) (*Proof, error) {
	return bn254impl.Prove(srs, pre, table, witness)
}

// Verify checks proof against pre. It returns (false, nil) for any
// soundness failure and a non-nil error only when the proof is too
// malformed to even check (size mismatches, transcript misuse).
func Verify(srs *SRS, pre *PreprocessedTable, proof *Proof) (bool, error) {
	return bn254impl.Verify(srs, pre, proof)
}

// VerifyDebug is Verify with per-check visibility into which of the
// pairing/scalar identities failed.
func VerifyDebug(srs *SRS, pre *PreprocessedTable, proof *Proof) (VerificationReport, error) {
	return bn254impl.VerifyDebug(srs, pre, proof)
}
