package cq

import (
	"math/big"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/arcadelab/cq/logger"
)

// VerificationReport breaks the four pairing/scalar checks out
// individually. Verify only returns the combined boolean; callers that
// want to know which specific check failed (debugging a broken prover,
// not auditing an adversarial proof) can call VerifyDebug instead.
type VerificationReport struct {
	MultiplicityIdentity bool // e(A, T) = e(Q_A, Z_V) * e(M - beta*A, 1)
	DegreeBound          bool // e(B_0, X^{N-n+1}) = e(P, 1)
	BatchedOpening       bool // combined KZG opening at gamma
	AuroraOpening        bool // A(s) opens to A(0) at zero

	Ok bool
}

// Verify checks proof against the preprocessed table. It returns
// (false, nil) for any soundness failure (forged proof, wrong witness,
// wrong table) and only returns a non-nil error for malformed input that
// cannot even be checked (wrong sizes, transcript misuse).
func Verify(srs *SRS, pre *PreprocessedTable, proof *Proof) (bool, error) {
	report, err := VerifyDebug(srs, pre, proof)
	if err != nil {
		return false, err
	}
	return report.Ok, nil
}

// VerifyDebug is Verify with per-check visibility, intended for tests and
// local debugging of a broken prover rather than for production callers.
func VerifyDebug(srs *SRS, pre *PreprocessedTable, proof *Proof) (VerificationReport, error) {
	n := proof.N
	if n == 0 || n&(n-1) != 0 {
		return VerificationReport{}, ErrWitnessSizeNotPowerOfTwo
	}
	if pre.N == 0 || pre.N&(pre.N-1) != 0 {
		return VerificationReport{}, ErrTableSizeNotPowerOfTwo
	}

	log := logger.Logger().With().Str("op", "verify").Uint64("n", n).Uint64("N", pre.N).Logger()
	start := time.Now()
	log.Debug().Msg("starting proof verification")

	_, _, g1Gen, g2Gen := bn254.Generators()

	transcript := NewTranscript()
	transcript.AbsorbCommitmentsG1(proof.CommitmentF)
	transcript.AbsorbCommitmentsG1(proof.CommitmentM)
	betaSlice, err := transcript.Challenge(1)
	if err != nil {
		return VerificationReport{}, err
	}
	beta := betaSlice[0]

	transcript.AbsorbCommitmentsG1(
		proof.CommitmentA, proof.CommitmentQA, proof.CommitmentB0,
		proof.CommitmentQB, proof.CommitmentP,
	)
	gammaSlice, err := transcript.Challenge(1)
	if err != nil {
		return VerificationReport{}, err
	}
	gamma := gammaSlice[0]

	transcript.AbsorbField(proof.B0AtGamma, proof.FAtGamma, proof.A0)
	etaSlice, err := transcript.Challenge(1)
	if err != nil {
		return VerificationReport{}, err
	}
	eta := etaSlice[0]

	var report VerificationReport

	// Check 1: e(A, T) = e(Q_A, Z_V) * e(M - beta*A, 1)
	{
		var betaA bn254.G1Affine
		betaA.ScalarMultiplication(&proof.CommitmentA, toBigIntPtr(beta))
		var tmp bn254.G1Affine
		tmp.Sub(&proof.CommitmentM, &betaA)

		var negQA, negTmp bn254.G1Affine
		negQA.Neg(&proof.CommitmentQA)
		negTmp.Neg(&tmp)

		ok, err := bn254.PairingCheck(
			[]bn254.G1Affine{proof.CommitmentA, negQA, negTmp},
			[]bn254.G2Affine{pre.T2, pre.ZV, g2Gen},
		)
		if err != nil {
			return VerificationReport{}, err
		}
		report.MultiplicityIdentity = ok
	}

	// Check 2: e(B_0, X^{N-n+1}) = e(P, 1)
	{
		padLen := int(pre.N) - int(n) + 1
		if padLen < 0 || padLen >= len(srs.G2) {
			return VerificationReport{}, ErrSRSTooSmall
		}
		var negP bn254.G1Affine
		negP.Neg(&proof.CommitmentP)
		ok, err := bn254.PairingCheck(
			[]bn254.G1Affine{proof.CommitmentB0, negP},
			[]bn254.G2Affine{srs.G2[padLen], g2Gen},
		)
		if err != nil {
			return VerificationReport{}, err
		}
		report.DegreeBound = ok
	}

	// Check 3: batched opening of B_0, f, Q_B at gamma.
	{
		var nElem, bigNElem, bigNInv fr.Element
		nElem.SetUint64(n)
		bigNElem.SetUint64(pre.N)
		bigNInv.Inverse(&bigNElem)
		var b0 fr.Element
		b0.Mul(&bigNElem, &proof.A0)
		var nInv fr.Element
		nInv.Inverse(&nElem)
		b0.Mul(&b0, &nInv)

		zHGamma := vanish(gamma, n)
		zHGammaInv := new(fr.Element).Inverse(&zHGamma)

		var bGamma fr.Element
		bGamma.Mul(&proof.B0AtGamma, &gamma)
		bGamma.Add(&bGamma, &b0)

		var fPlusBeta, qBGamma, one fr.Element
		one.SetOne()
		fPlusBeta.Add(&proof.FAtGamma, &beta)
		qBGamma.Mul(&bGamma, &fPlusBeta)
		qBGamma.Sub(&qBGamma, &one)
		qBGamma.Mul(&qBGamma, zHGammaInv)

		var etaSq, v fr.Element
		etaSq.Mul(&eta, &eta)
		v.Add(&proof.B0AtGamma, new(fr.Element).Mul(&eta, &proof.FAtGamma))
		v.Add(&v, new(fr.Element).Mul(&etaSq, &qBGamma))

		var cmC, etaF, etaSqQB bn254.G1Affine
		etaF.ScalarMultiplication(&proof.CommitmentF, toBigIntPtr(eta))
		etaSqQB.ScalarMultiplication(&proof.CommitmentQB, toBigIntPtr(etaSq))
		cmC.Add(&proof.CommitmentB0, &etaF)
		cmC.Add(&cmC, &etaSqQB)

		var vG1, lhsG1, gammaPi bn254.G1Affine
		vG1.ScalarMultiplication(&g1Gen, toBigIntPtr(v))
		gammaPi.ScalarMultiplication(&proof.CommitmentPiGamma, toBigIntPtr(gamma))
		lhsG1.Sub(&cmC, &vG1)
		lhsG1.Add(&lhsG1, &gammaPi)

		var negPi bn254.G1Affine
		negPi.Neg(&proof.CommitmentPiGamma)

		ok, err := bn254.PairingCheck(
			[]bn254.G1Affine{lhsG1, negPi},
			[]bn254.G2Affine{g2Gen, srs.G2[1]},
		)
		if err != nil {
			return VerificationReport{}, err
		}
		report.BatchedOpening = ok
	}

	// Check 4: e(A - [A0]_1, 1) = e(A0X, [s]_2)
	{
		var a0G1, lhsG1 bn254.G1Affine
		a0G1.ScalarMultiplication(&g1Gen, toBigIntPtr(proof.A0))
		lhsG1.Sub(&proof.CommitmentA, &a0G1)

		var negA0X bn254.G1Affine
		negA0X.Neg(&proof.CommitmentA0X)

		ok, err := bn254.PairingCheck(
			[]bn254.G1Affine{lhsG1, negA0X},
			[]bn254.G2Affine{g2Gen, srs.G2[1]},
		)
		if err != nil {
			return VerificationReport{}, err
		}
		report.AuroraOpening = ok
	}

	report.Ok = report.MultiplicityIdentity && report.DegreeBound && report.BatchedOpening && report.AuroraOpening

	log.Debug().Dur("elapsed", time.Since(start)).Bool("ok", report.Ok).Msg("finished proof verification")

	return report, nil
}

func toBigIntPtr(e fr.Element) *big.Int {
	bi := bigIntOf(e)
	return &bi
}
