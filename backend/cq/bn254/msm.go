package cq

import "github.com/consensys/gnark-crypto/ecc"

// ecMultiExpConfig centralizes the MultiExp tuning knob used by every
// commitment computation in this package. It is left at its zero value,
// so gnark-crypto picks its own default algorithm and NbTasks for each
// MultiExp call; this package adds no per-call tuning. The only
// parallelism this package manages itself is the preprocessor's
// goroutine split of the Lagrange-commitment rescale (see precompute.go),
// which runs no MultiExp.
func ecMultiExpConfig() ecc.MultiExpConfig {
	return ecc.MultiExpConfig{}
}
