package cq

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// evaluate returns p(z) via Horner's method. p is in canonical
// (coefficient) form, constant term first.
func evaluate(p []fr.Element, z fr.Element) fr.Element {
	var res fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		res.Mul(&res, &z)
		res.Add(&res, &p[i])
	}
	return res
}

// divideByLinear computes q(X) = (p(X) - p(a)) / (X - a) by synthetic
// division. pa must equal evaluate(p, a); the caller supplies it to avoid
// a redundant evaluation when it already has the value on hand. The
// result has degree len(p)-2 (one coefficient shorter than p).
func divideByLinear(p []fr.Element, a, pa fr.Element) []fr.Element {
	n := len(p)
	q := make([]fr.Element, n)
	copy(q, p)
	q[0].Sub(&q[0], &pa)

	var c, tmp fr.Element
	for i := n - 1; i >= 0; i-- {
		tmp.Mul(&c, &a)
		q[i].Add(&q[i], &tmp)
		c, q[i] = q[i], c
	}
	return q[:n-1]
}

// divideByVanishing divides p by X^m - 1 (the vanishing polynomial of a
// multiplicative subgroup of order m) and returns the quotient and
// remainder in canonical form. Used to form Q_B = (B(X)(F(X)+beta) - 1) /
// Z_{H_n}(X); the caller checks the remainder is zero and surfaces
// ErrCannotDivideByVanishingPolynomial otherwise.
func divideByVanishing(p []fr.Element, m int) (quotient, remainder []fr.Element) {
	if len(p) <= m {
		return nil, append([]fr.Element(nil), p...)
	}
	q := make([]fr.Element, len(p)-m)
	rem := make([]fr.Element, m)
	work := make([]fr.Element, len(p))
	copy(work, p)

	for i := len(work) - 1; i >= m; i-- {
		coeff := work[i]
		if coeff.IsZero() {
			continue
		}
		q[i-m] = coeff
		work[i-m].Add(&work[i-m], &coeff) // X^{i-m}*(X^m - 1) cancels X^i, adds +coeff at i-m
		work[i] = fr.Element{}
	}
	copy(rem, work[:m])
	return q, rem
}

// scalePoly returns c*p, coefficient-wise.
func scalePoly(p []fr.Element, c fr.Element) []fr.Element {
	res := make([]fr.Element, len(p))
	for i := range p {
		res[i].Mul(&p[i], &c)
	}
	return res
}

// addPoly returns a+b, zero-padding the shorter operand.
func addPoly(a, b []fr.Element) []fr.Element {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	res := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var av, bv fr.Element
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		res[i].Add(&av, &bv)
	}
	return res
}

// subPoly returns a-b, zero-padding the shorter operand.
func subPoly(a, b []fr.Element) []fr.Element {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	res := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var av, bv fr.Element
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		res[i].Sub(&av, &bv)
	}
	return res
}

// mulPoly returns the schoolbook product a*b. The protocol only ever
// multiplies a witness-domain-sized polynomial by another of the same
// order of magnitude (B(X)*(F(X)+beta)), so O(n^2) here is not on the
// dominant cost path; the quasi-linear work is confined to the
// preprocessor's Toeplitz trick (toeplitz.go) per spec.
func mulPoly(a, b []fr.Element) []fr.Element {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	res := make([]fr.Element, len(a)+len(b)-1)
	var tmp fr.Element
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j, bj := range b {
			tmp.Mul(&ai, &bj)
			res[i+j].Add(&res[i+j], &tmp)
		}
	}
	return res
}

// bigIntOf converts a field element to its regular-form big.Int
// representation, used where gnark-crypto APIs want *big.Int scalars
// (e.g. ScalarMultiplication).
func bigIntOf(e fr.Element) big.Int {
	var bi big.Int
	e.BigInt(&bi)
	return bi
}
