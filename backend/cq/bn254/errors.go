package cq

import "errors"

var (
	// ErrTableSizeNotPowerOfTwo is returned by Preprocess when len(t) is not
	// a power of two.
	ErrTableSizeNotPowerOfTwo = errors.New("cq: table size must be a power of two")

	// ErrWitnessSizeNotPowerOfTwo is returned by Prove/Verify when the
	// witness length is not a power of two.
	ErrWitnessSizeNotPowerOfTwo = errors.New("cq: witness size must be a power of two")

	// ErrWitnessNotInTable is returned by Prove when a witness value does
	// not appear anywhere in the table.
	ErrWitnessNotInTable = errors.New("cq: witness value not found in table")

	// ErrCannotDivideByVanishingPolynomial signals a nonzero remainder when
	// forming the quotient Q_B; this indicates a broken witness or an
	// internal bug, never an adversarial verifier-visible condition.
	ErrCannotDivideByVanishingPolynomial = errors.New("cq: cannot divide by vanishing polynomial")

	// ErrTranscriptMisuse is returned when Challenge is called twice
	// without an intervening Absorb. It signals a programming error in the
	// protocol implementation, not an adversarial input.
	ErrTranscriptMisuse = errors.New("cq: transcript challenge requested twice without absorb")

	// ErrSRSTooSmall is returned when the supplied SRS does not cover the
	// requested degree.
	ErrSRSTooSmall = errors.New("cq: srs too small for requested degree")

	// ErrCacheFormatMismatch is returned by ReadPreprocessedTableFrom when
	// the cached blob was written by an incompatible format version.
	ErrCacheFormatMismatch = errors.New("cq: preprocessed table cache format mismatch")
)
