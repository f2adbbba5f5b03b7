package cq

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// commitG1 returns the KZG commitment [p(s)]_1 = sum_i p_i * srs.G1[i].
func commitG1(srs *SRS, p []fr.Element) (bn254.G1Affine, error) {
	if len(p) > len(srs.G1) {
		return bn254.G1Affine{}, ErrSRSTooSmall
	}
	var com bn254.G1Affine
	if _, err := com.MultiExp(srs.G1[:len(p)], p, ecMultiExpConfig()); err != nil {
		return bn254.G1Affine{}, err
	}
	return com, nil
}

// commitG2 returns the KZG commitment [p(s)]_2 = sum_i p_i * srs.G2[i].
func commitG2(srs *SRS, p []fr.Element) (bn254.G2Affine, error) {
	if len(p) > len(srs.G2) {
		return bn254.G2Affine{}, ErrSRSTooSmall
	}
	var com bn254.G2Affine
	if _, err := com.MultiExp(srs.G2[:len(p)], p, ecMultiExpConfig()); err != nil {
		return bn254.G2Affine{}, err
	}
	return com, nil
}

// openG1 produces a single-point KZG opening proof pi = [(p(X)-p(z))/(X-z)]_1
// for p at z. pz must equal evaluate(p, z).
func openG1(srs *SRS, p []fr.Element, z, pz fr.Element) (bn254.G1Affine, error) {
	q := divideByLinear(p, z, pz)
	return commitG1(srs, q)
}

// verifyG1 checks a KZG opening com = [p(s)]_1, pi = [(p(X)-y)/(X-z)]_1
// against the claim p(z) = y, via
//
//	e(com - [y]_1, [1]_2) == e(pi, [s]_2 - [z]_2).
func verifyG1(srs *SRS, com bn254.G1Affine, z, y fr.Element, pi bn254.G1Affine) (bool, error) {
	_, _, g1Gen, g2Gen := bn254.Generators()

	yBig, zBig := bigIntOf(y), bigIntOf(z)

	var yG1, lhs bn254.G1Affine
	yG1.ScalarMultiplication(&g1Gen, &yBig)
	lhs.Sub(&com, &yG1)

	var zG2, rhs bn254.G2Affine
	zG2.ScalarMultiplication(&g2Gen, &zBig)
	rhs.Sub(&srs.G2[1], &zG2)

	var negPi bn254.G1Affine
	negPi.Neg(&pi)

	return bn254.PairingCheck(
		[]bn254.G1Affine{lhs, negPi},
		[]bn254.G2Affine{g2Gen, rhs},
	)
}
