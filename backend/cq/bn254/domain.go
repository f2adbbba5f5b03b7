package cq

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
)

// domainFor returns a multiplicative-subgroup domain of the given
// power-of-two size, built afresh on every call (nothing is cached). gnark-crypto's fft.Domain already resolves the
// field's primitive 2-adic root of unity and its inverse correctly for
// every size we need (the witness domain H_n, the table domain H_N, and
// the doubled Toeplitz domain); we borrow it purely for that, and drive
// the actual transforms ourselves in fft_helpers.go so the field and
// group transforms share one index convention.
func domainFor(size uint64) *fft.Domain {
	return fft.NewDomain(size)
}

// vanish evaluates the vanishing polynomial X^m - 1 at z.
func vanish(z fr.Element, m uint64) fr.Element {
	var zm fr.Element
	zm.Exp(z, new(big.Int).SetUint64(m))
	var one fr.Element
	one.SetOne()
	zm.Sub(&zm, &one)
	return zm
}
