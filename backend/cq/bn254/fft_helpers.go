package cq

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// bitReverseField permutes a into bit-reversal order in place. len(a) must
// be a power of two.
func bitReverseField(a []fr.Element) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

func bitReverseG1(a []bn254.G1Jac) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

// fftFieldNatural computes the natural-order radix-2 DIT FFT of a over the
// subgroup generated by omega (|a| must equal the subgroup order). It is a
// self-contained helper kept separate from github.com/consensys/gnark-crypto/ecc/bn254/fr/fft
// so it can share its exact natural-in/natural-out convention with
// fftG1Natural below: both are driven by the same twiddle powers, which is
// what lets the Feist-Khovratovich pointwise multiply in toeplitz.go line
// up index-for-index between a field transform and a group transform.
func fftFieldNatural(a []fr.Element, omega fr.Element) {
	n := len(a)
	bitReverseField(a)
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		var wlen fr.Element
		wlen.Exp(omega, big.NewInt(int64(n/size)))
		for i := 0; i < n; i += size {
			w := fr.One()
			for j := 0; j < half; j++ {
				var u, v fr.Element
				u = a[i+j]
				v.Mul(&a[i+j+half], &w)
				a[i+j].Add(&u, &v)
				a[i+j+half].Sub(&u, &v)
				w.Mul(&w, &wlen)
			}
		}
	}
}

// fftFieldInverse is fftFieldNatural run with the inverse root, followed
// by the 1/n normalization.
func fftFieldInverse(a []fr.Element, omegaInv fr.Element) {
	fftFieldNatural(a, omegaInv)
	var nInv fr.Element
	nInv.SetUint64(uint64(len(a)))
	nInv.Inverse(&nInv)
	for i := range a {
		a[i].Mul(&a[i], &nInv)
	}
}

// fftG1Natural is fftFieldNatural's analogue over G1 points: the twiddle
// factors are still field elements, scalar-multiplying Jacobian points
// instead of multiplying field elements.
func fftG1Natural(a []bn254.G1Jac, omega fr.Element) {
	n := len(a)
	bitReverseG1(a)
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		var wlen fr.Element
		wlen.Exp(omega, big.NewInt(int64(n/size)))
		for i := 0; i < n; i += size {
			w := fr.One()
			for j := 0; j < half; j++ {
				var u, v bn254.G1Jac
				var wBig big.Int
				w.BigInt(&wBig)
				u.Set(&a[i+j])
				v.ScalarMultiplication(&a[i+j+half], &wBig)

				var sum, diff bn254.G1Jac
				sum.Set(&u).AddAssign(&v)
				diff.Set(&u).SubAssign(&v)
				a[i+j] = sum
				a[i+j+half] = diff

				w.Mul(&w, &wlen)
			}
		}
	}
}

// fftG1Inverse is fftG1Natural run with the inverse root, followed by the
// 1/n normalization (scalar-multiplying every point by n^{-1}).
func fftG1Inverse(a []bn254.G1Jac, omegaInv fr.Element) {
	fftG1Natural(a, omegaInv)
	var nInv fr.Element
	nInv.SetUint64(uint64(len(a)))
	nInv.Inverse(&nInv)
	var nInvBig big.Int
	nInv.BigInt(&nInvBig)
	for i := range a {
		a[i].ScalarMultiplication(&a[i], &nInvBig)
	}
}

// rootOfUnity returns a primitive n-th root of unity in Fr, n a power of
// two, by borrowing github.com/consensys/gnark-crypto/ecc/bn254/fr/fft's
// domain-construction logic (it already knows the field's 2-adicity and
// canonical generator) purely to read off .Generator/.GeneratorInv; this
// package's own fftFieldNatural/fftG1Natural then drive the transform
// itself so that the field and group transforms share one convention.
func rootOfUnity(n uint64) (omega, omegaInv fr.Element) {
	d := domainFor(n)
	return d.Generator, d.GeneratorInv
}
