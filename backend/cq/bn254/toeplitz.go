package cq

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// nextPowerOfTwo returns the smallest power of two >= n (n >= 1).
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// allOpeningProofsG1 computes, for a polynomial t given by its N
// coefficients tCoeffs (canonical form) and committed over an SRS of size
// at least N, the N cached quotient commitments
//
//	Q_i = (w^i / N) * [(t(X) - t(w^i)) / (X - w^i)]_1
//	    = [(t(X) - t(w^i)) * L_i(X) / Z_V(X)]_1,  i = 0..N-1
//
// where w is the N-th root of unity (the table's evaluation domain): each
// Q_i is the KZG opening proof of t at w^i scaled by w^i/N. A direct
// computation is N openings each costing an O(N)-size polynomial
// division and MSM: O(N^2) total. This function instead runs the
// Feist-Khovratovich algorithm, which produces all N commitments in
// O(N log N) group operations by recognizing that the quotient
// coefficients form a Toeplitz-matrix-vector product computable via two
// length-2P FFTs (P = next power of two >= N) followed by an N-point
// FFT to rotate from "h" coefficients to per-point quotient commitments.
func allOpeningProofsG1(srs *SRS, tCoeffs []fr.Element) ([]bn254.G1Affine, error) {
	n := len(tCoeffs)
	if n == 0 {
		return nil, nil
	}
	if n > len(srs.G1) {
		return nil, ErrSRSTooSmall
	}

	h, err := hCoefficients(srs, tCoeffs)
	if err != nil {
		return nil, err
	}

	return quotientsFromH(h, n)
}

// hCoefficients runs the inner Toeplitz-matrix-vector product of the
// Feist-Khovratovich algorithm and returns the first P "h" coefficients
// (P = next power of two >= n), from which quotientsFromH derives the
// per-point quotient commitments via one more (length-n) FFT.
func hCoefficients(srs *SRS, tCoeffs []fr.Element) ([]bn254.G1Jac, error) {
	n := len(tCoeffs)
	p := nextPowerOfTwo(n)
	if p == 0 {
		p = 1
	}
	m := 2 * p

	// s-hat: reversed SRS points s_{P-1},...,s_1,s_0, zero-extended to
	// length m. tCoeffs[0] never participates (the Toeplitz matrix is
	// built from the polynomial's non-constant coefficients), matching
	// the algebra in the reference derivation of the quotient Toeplitz
	// matrix.
	sHat := make([]bn254.G1Jac, m)
	for i := 0; i < p && i < len(srs.G1); i++ {
		sHat[i].FromAffine(&srs.G1[p-1-i])
	}

	omega, omegaInv := rootOfUnity(uint64(m))
	y := make([]bn254.G1Jac, m)
	copy(y, sHat)
	fftG1Natural(y, omega)

	// c-hat: P+1 zeros followed by tCoeffs[1:P] (dropping the constant
	// term), zero-extended to length m.
	cHat := make([]fr.Element, m)
	for i := 1; i < p && i < n; i++ {
		cHat[p+i].Set(&tCoeffs[i])
	}

	v := make([]fr.Element, m)
	copy(v, cHat)
	fftFieldNatural(v, omega)

	for i := range y {
		var vBig big.Int
		v[i].BigInt(&vBig)
		y[i].ScalarMultiplication(&y[i], &vBig)
	}

	fftG1Inverse(y, omegaInv)

	return y[:p], nil
}

// quotientsFromH rotates the P "h" coefficients into the N quotient
// commitments Q_0..Q_{N-1} via an N-point FFT over the table domain,
// scaling each output by omega^i / N per the Feist-Khovratovich formula
// Q_i = FFT(h)_i * w^i / N.
func quotientsFromH(h []bn254.G1Jac, n int) ([]bn254.G1Affine, error) {
	p := len(h)
	padded := make([]bn254.G1Jac, nextPowerOfTwo(n))
	copy(padded, h[:min(p, len(padded))])

	omega, _ := rootOfUnity(uint64(len(padded)))
	fftG1Natural(padded, omega)

	var nInv fr.Element
	nInv.SetUint64(uint64(n))
	nInv.Inverse(&nInv)

	wPow := fr.One()
	out := make([]bn254.G1Affine, n)
	for i := 0; i < n; i++ {
		var scale fr.Element
		scale.Mul(&wPow, &nInv)
		var scaleBig big.Int
		scale.BigInt(&scaleBig)

		var qi bn254.G1Jac
		qi.ScalarMultiplication(&padded[i], &scaleBig)
		out[i].FromJacobian(&qi)

		wPow.Mul(&wPow, &omega)
	}
	return out, nil
}
