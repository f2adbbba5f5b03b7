package cq

import (
	"math/big"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/arcadelab/cq/logger"
)

// Witness is the vector f of values the prover claims all appear in the
// preprocessed table. Its length must be a power of two.
type Witness struct {
	F []fr.Element
}

// Proof is the byte-exact transcript of the three cq rounds: the
// commitments sent in each round plus the three evaluation claims opened
// at the round-3 challenge gamma.
type Proof struct {
	N uint64 // witness length, echoed so the verifier can size its own domain

	CommitmentF bn254.G1Affine // [f(s)]_1
	CommitmentM bn254.G1Affine // [m(s)]_1

	CommitmentA  bn254.G1Affine // [A(s)]_1
	CommitmentQA bn254.G1Affine // [Q_A(s)]_1
	CommitmentB0 bn254.G1Affine // [B_0(s)]_1, B_0 = (B(X)-B(0))/X
	CommitmentQB bn254.G1Affine // [Q_B(s)]_1
	CommitmentP  bn254.G1Affine // [X^{N-1-(n-2)} * B_0(X)]_1, degree-bound proof for B_0

	B0AtGamma fr.Element // B_0(gamma)
	FAtGamma  fr.Element // f(gamma)
	A0        fr.Element // A(0), derived from B(0) via the Aurora relation

	CommitmentPiGamma bn254.G1Affine // batched KZG opening proof at gamma
	CommitmentA0X     bn254.G1Affine // opening proof that CommitmentA evaluates to A0 at 0
}

// Prove builds a cq membership proof that every entry of witness.F
// appears in the table underlying the given preprocessed material.
// table must be the same values (in the same order) that were passed to
// Preprocess; srs must be the same one used there.
func Prove(srs *SRS, pre *PreprocessedTable, table []fr.Element, witness Witness) (*Proof, error) {
	n := uint64(len(witness.F))
	if n == 0 || n&(n-1) != 0 {
		return nil, ErrWitnessSizeNotPowerOfTwo
	}
	if uint64(len(table)) != pre.N {
		return nil, ErrTableSizeNotPowerOfTwo
	}

	log := logger.Logger().With().Str("op", "prove").Uint64("n", n).Uint64("N", pre.N).Logger()
	start := time.Now()
	log.Debug().Msg("starting proof generation")

	nDom := domainFor(n)
	transcript := NewTranscript()

	// f(X) and its commitment.
	fCoeffs := append([]fr.Element(nil), witness.F...)
	fftFieldInverse(fCoeffs, nDom.GeneratorInv)
	cmF, err := commitG1(srs, fCoeffs)
	if err != nil {
		return nil, err
	}
	transcript.AbsorbCommitmentsG1(cmF)

	// Round 1: multiplicities and their commitment.
	mEntries, _, err := buildMultiplicities(pre, witness.F)
	if err != nil {
		return nil, err
	}
	cmM, err := sparseLagrangeCombination(pre.Li, mEntries, multiplicityWeight)
	if err != nil {
		return nil, err
	}
	transcript.AbsorbCommitmentsG1(cmM)

	betaSlice, err := transcript.Challenge(1)
	if err != nil {
		return nil, err
	}
	beta := betaSlice[0]

	// Round 2.
	aWeights := make([]fr.Element, len(mEntries))
	for i, e := range mEntries {
		var denom fr.Element
		denom.Add(&table[e.Index], &beta)
		denom.Inverse(&denom)
		var count fr.Element
		count.SetUint64(e.Count)
		aWeights[i].Mul(&denom, &count)
	}
	cmA, err := sparseLagrangeCombination(pre.Li, mEntries, func(e multiplicityEntry, i int) fr.Element { return aWeights[i] })
	if err != nil {
		return nil, err
	}
	cmQA, err := sparseLagrangeCombination(pre.Qi, mEntries, func(e multiplicityEntry, i int) fr.Element { return aWeights[i] })
	if err != nil {
		return nil, err
	}

	bEvals := make([]fr.Element, n)
	for j, fj := range witness.F {
		var denom fr.Element
		denom.Add(&fj, &beta)
		bEvals[j].Inverse(&denom)
	}
	bCoeffs := append([]fr.Element(nil), bEvals...)
	fftFieldInverse(bCoeffs, nDom.GeneratorInv)
	b0Coeffs := append([]fr.Element(nil), bCoeffs[1:]...)

	cmB0, err := commitG1(srs, b0Coeffs)
	if err != nil {
		return nil, err
	}

	fPlusBeta := append([]fr.Element(nil), fCoeffs...)
	fPlusBeta[0].Add(&fPlusBeta[0], &beta)
	var one fr.Element
	one.SetOne()
	numerator := subPoly(mulPoly(bCoeffs, fPlusBeta), []fr.Element{one})
	qBCoeffs, remainder := divideByVanishing(numerator, int(n))
	for _, r := range remainder {
		if !r.IsZero() {
			return nil, ErrCannotDivideByVanishingPolynomial
		}
	}
	cmQB, err := commitG1(srs, qBCoeffs)
	if err != nil {
		return nil, err
	}

	padLen := int(pre.N) - 1 - (int(n) - 2)
	if padLen < 0 {
		padLen = 0
	}
	pCoeffs := make([]fr.Element, padLen+len(b0Coeffs))
	copy(pCoeffs[padLen:], b0Coeffs)
	cmP, err := commitG1(srs, pCoeffs)
	if err != nil {
		return nil, err
	}

	transcript.AbsorbCommitmentsG1(cmA, cmQA, cmB0, cmQB, cmP)
	gammaSlice, err := transcript.Challenge(1)
	if err != nil {
		return nil, err
	}
	gamma := gammaSlice[0]

	// Round 3.
	b0Gamma := evaluate(b0Coeffs, gamma)
	fGamma := evaluate(fCoeffs, gamma)

	var nBig, bigNBig, bigNInv fr.Element
	nBig.SetUint64(n)
	bigNBig.SetUint64(pre.N)
	bigNInv.Inverse(&bigNBig)
	var a0 fr.Element
	a0.Mul(&bCoeffs[0], &nBig)
	a0.Mul(&a0, &bigNInv)

	transcript.AbsorbField(b0Gamma, fGamma, a0)
	etaSlice, err := transcript.Challenge(1)
	if err != nil {
		return nil, err
	}
	eta := etaSlice[0]

	qBGamma := evaluate(qBCoeffs, gamma)
	var etaSq, v fr.Element
	etaSq.Mul(&eta, &eta)
	v.Add(&b0Gamma, new(fr.Element).Mul(&eta, &fGamma))
	v.Add(&v, new(fr.Element).Mul(&etaSq, &qBGamma))

	combined := addPoly(addPoly(b0Coeffs, scalePoly(fCoeffs, eta)), scalePoly(qBCoeffs, etaSq))
	combined = subPoly(combined, []fr.Element{v})
	var zero fr.Element
	hCoeffs := divideByLinear(combined, gamma, zero)
	cmPiGamma, err := commitG1(srs, hCoeffs)
	if err != nil {
		return nil, err
	}

	cmA0X, err := sparseLagrangeCombination(pre.LiQuotient, mEntries, func(e multiplicityEntry, i int) fr.Element { return aWeights[i] })
	if err != nil {
		return nil, err
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("finished proof generation")

	return &Proof{
		N:                 n,
		CommitmentF:       cmF,
		CommitmentM:       cmM,
		CommitmentA:       cmA,
		CommitmentQA:      cmQA,
		CommitmentB0:      cmB0,
		CommitmentQB:      cmQB,
		CommitmentP:       cmP,
		B0AtGamma:         b0Gamma,
		FAtGamma:          fGamma,
		A0:                a0,
		CommitmentPiGamma: cmPiGamma,
		CommitmentA0X:     cmA0X,
	}, nil
}

func multiplicityWeight(e multiplicityEntry, _ int) fr.Element {
	var w fr.Element
	w.SetUint64(e.Count)
	return w
}

// sparseLagrangeCombination computes Σ weight(e)*basis[e.Index] over the
// sparse entries, the "cached quotients" trick that keeps commitments to
// M, A, Q_A and the A(0) opening proof at O(n) group operations rather
// than the O(N) a dense recomputation over the whole table would cost.
func sparseLagrangeCombination(basis []bn254.G1Affine, entries []multiplicityEntry, weight func(multiplicityEntry, int) fr.Element) (bn254.G1Affine, error) {
	var acc bn254.G1Jac
	for i, e := range entries {
		if e.Index >= uint64(len(basis)) {
			return bn254.G1Affine{}, ErrSRSTooSmall
		}
		w := weight(e, i)
		var wBig big.Int
		w.BigInt(&wBig)
		var term bn254.G1Jac
		term.FromAffine(&basis[e.Index])
		term.ScalarMultiplication(&term, &wBig)
		acc.AddAssign(&term)
	}
	var out bn254.G1Affine
	out.FromJacobian(&acc)
	return out, nil
}
