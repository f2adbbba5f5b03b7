package cq

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genTableSize picks a domain size from a small set of powers of two, for
// laws that are quantified over N itself rather than over table contents.
func genTableSize(sizes ...uint64) gopter.Gen {
	return gen.IntRange(0, len(sizes)-1).Map(func(i int) uint64 { return sizes[i] })
}

// genFieldElement draws a small nonnegative integer and lifts it into Fr,
// the same "cheap but nonzero-width" generator shape gnark-crypto's own
// generated property tests use for field-element generators.
func genFieldElement() gopter.Gen {
	return gen.Int64Range(0, 1<<20).Map(func(v int64) fr.Element {
		var e fr.Element
		e.SetInt64(v)
		return e
	})
}

func genTable(n int) gopter.Gen {
	return gen.SliceOfN(n, genFieldElement()).Map(func(vs []fr.Element) []fr.Element {
		return vs
	})
}

func genIndices(count, bound int) gopter.Gen {
	return gen.SliceOfN(count, gen.IntRange(0, bound-1))
}

func witnessFrom(table []fr.Element, indices []int) Witness {
	f := make([]fr.Element, len(indices))
	for i, idx := range indices {
		f[i] = table[idx]
	}
	return Witness{F: f}
}

// TestCompletenessProperty is the gopter encoding of the completeness law:
// for all tables and witnesses drawn entirely from that table, a proof
// verifies.
func TestCompletenessProperty(t *testing.T) {
	const tableSize, witnessSize = 8, 4

	srs, err := NewDevSRS(tableSize + 1)
	if err != nil {
		t.Fatalf("building dev SRS: %v", err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("every witness drawn from the table verifies", prop.ForAll(
		func(table []fr.Element, indices []int) bool {
			pre, err := Preprocess(srs, table)
			if err != nil {
				t.Logf("preprocess: %v", err)
				return false
			}
			witness := witnessFrom(table, indices)
			proof, err := Prove(srs, pre, table, witness)
			if err != nil {
				t.Logf("prove: %v", err)
				return false
			}
			ok, err := Verify(srs, pre, proof)
			if err != nil {
				t.Logf("verify: %v", err)
				return false
			}
			return ok
		},
		genTable(tableSize),
		genIndices(witnessSize, tableSize),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestTranscriptDeterminismProperty checks that two Prove calls over
// identical inputs produce structurally identical proofs: the transcript's
// challenges are a pure function of what was absorbed, with no external
// randomness entering the prover. Structural equality is asserted with
// cmp.Diff rather than a hand-rolled byte comparison, since Proof has no
// unexported fields standing in its way and a diff is far more useful than
// a bare true/false on failure.
func TestTranscriptDeterminismProperty(t *testing.T) {
	const tableSize, witnessSize = 8, 4

	srs, err := NewDevSRS(tableSize + 1)
	if err != nil {
		t.Fatalf("building dev SRS: %v", err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("repeated proving runs are structurally identical", prop.ForAll(
		func(table []fr.Element, indices []int) bool {
			pre, err := Preprocess(srs, table)
			if err != nil {
				return false
			}
			witness := witnessFrom(table, indices)

			p1, err := Prove(srs, pre, table, witness)
			if err != nil {
				return false
			}
			p2, err := Prove(srs, pre, table, witness)
			if err != nil {
				return false
			}

			if diff := cmp.Diff(p1, p2); diff != "" {
				t.Logf("proof mismatch across repeated runs (-first +second):\n%s", diff)
				return false
			}
			return true
		},
		genTable(tableSize),
		genIndices(witnessSize, tableSize),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestVerifierDeterminismProperty checks that Verify is a pure function of
// its inputs: two calls on the same proof agree.
func TestVerifierDeterminismProperty(t *testing.T) {
	const tableSize, witnessSize = 8, 4

	srs, err := NewDevSRS(tableSize + 1)
	if err != nil {
		t.Fatalf("building dev SRS: %v", err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("repeated verification runs agree", prop.ForAll(
		func(table []fr.Element, indices []int) bool {
			pre, err := Preprocess(srs, table)
			if err != nil {
				return false
			}
			witness := witnessFrom(table, indices)
			proof, err := Prove(srs, pre, table, witness)
			if err != nil {
				return false
			}

			ok1, err1 := Verify(srs, pre, proof)
			ok2, err2 := Verify(srs, pre, proof)
			return ok1 == ok2 && (err1 == nil) == (err2 == nil)
		},
		genTable(tableSize),
		genIndices(witnessSize, tableSize),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestCommitmentHomomorphismProperty checks the KZG commitment scheme's
// additive and scalar homomorphism directly against commitG1.
func TestCommitmentHomomorphismProperty(t *testing.T) {
	const degree = 7

	srs, err := NewDevSRS(degree + 1)
	if err != nil {
		t.Fatalf("building dev SRS: %v", err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	genPoly := gen.SliceOfN(degree+1, genFieldElement())

	properties.Property("commit_g1(p+q) = commit_g1(p) + commit_g1(q)", prop.ForAll(
		func(p, q []fr.Element) bool {
			cmP, err := commitG1(srs, p)
			if err != nil {
				return false
			}
			cmQ, err := commitG1(srs, q)
			if err != nil {
				return false
			}
			cmSum, err := commitG1(srs, addPoly(p, q))
			if err != nil {
				return false
			}
			sum := cmP
			sum.Add(&sum, &cmQ)
			return sum.Equal(&cmSum)
		},
		genPoly,
		genPoly,
	))

	properties.Property("commit_g1(c*p) = c*commit_g1(p)", prop.ForAll(
		func(p []fr.Element, c fr.Element) bool {
			cmP, err := commitG1(srs, p)
			if err != nil {
				return false
			}
			cmScaled, err := commitG1(srs, scalePoly(p, c))
			if err != nil {
				return false
			}
			cBig := bigIntOf(c)
			want := cmP
			want.ScalarMultiplication(&want, &cBig)
			return want.Equal(&cmScaled)
		},
		genPoly,
		genFieldElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestTranscriptGuardProperty checks the transcript misuse law: calling
// Challenge twice without an intervening Absorb must fail, regardless of
// what was absorbed beforehand.
func TestTranscriptGuardProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("a second challenge without an absorb is an error", prop.ForAll(
		func(seed fr.Element) bool {
			transcript := NewTranscript()
			transcript.AbsorbField(seed)
			if _, err := transcript.Challenge(1); err != nil {
				return false
			}
			_, err := transcript.Challenge(1)
			return err == ErrTranscriptMisuse
		},
		genFieldElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestLagrangeCommitmentCorrectnessProperty checks, for each i<N, that
// Li[i] (as computed by lagrangeCommitments' single-FFT shortcut) equals
// commit_g1(IFFT_{H_N}(e_i)) computed directly from the standard basis
// vector e_i, for every i in the domain.
func TestLagrangeCommitmentCorrectnessProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10
	properties := gopter.NewProperties(parameters)

	properties.Property("Li[i] matches a direct IFFT-then-commit of e_i, for every i", prop.ForAll(
		func(n uint64) bool {
			srs, err := NewDevSRS(int(n) + 1)
			if err != nil {
				return false
			}
			dom := domainFor(n)
			li, _, err := lagrangeCommitments(srs, n, dom)
			if err != nil {
				return false
			}

			var one fr.Element
			one.SetOne()
			for i := uint64(0); i < n; i++ {
				e := make([]fr.Element, n)
				e[i] = one
				fftFieldInverse(e, dom.GeneratorInv)

				want, err := commitG1(srs, e)
				if err != nil {
					return false
				}
				if !want.Equal(&li[i]) {
					return false
				}
			}
			return true
		},
		genTableSize(4, 8, 16),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestQuotientLagrangeCommitmentCorrectnessProperty checks, for each i<N,
// that LiQuotient[i] (quotientLagrangeCommitments' closed-form shortcut)
// equals commit_g1((L_i(X) - L_i(0)) / X) computed directly by dividing
// the IFFT'd Lagrange basis polynomial by its linear factor at zero.
func TestQuotientLagrangeCommitmentCorrectnessProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10
	properties := gopter.NewProperties(parameters)

	properties.Property("LiQuotient[i] matches a direct division of L_i by X, for every i", prop.ForAll(
		func(n uint64) bool {
			srs, err := NewDevSRS(int(n) + 1)
			if err != nil {
				return false
			}
			dom := domainFor(n)
			_, liq, err := lagrangeCommitments(srs, n, dom)
			if err != nil {
				return false
			}

			var one, zero fr.Element
			one.SetOne()
			for i := uint64(0); i < n; i++ {
				e := make([]fr.Element, n)
				e[i] = one
				fftFieldInverse(e, dom.GeneratorInv)

				quotientCoeffs := divideByLinear(e, zero, e[0])
				want, err := commitG1(srs, quotientCoeffs)
				if err != nil {
					return false
				}
				if !want.Equal(&liq[i]) {
					return false
				}
			}
			return true
		},
		genTableSize(4, 8, 16),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestToeplitzQuotientCorrectnessProperty checks the Feist-Khovratovich
// batch-opening law: the N quotient commitments it produces in O(N log N)
// match, index by index, the single-point KZG openings
// [(t(X)-t(w^i))/(X-w^i)]_1 computed directly by synthetic division and
// scaled by w^i/N (the factor that turns an opening proof into the cached
// quotient [(t(X)-t(w^i))*L_i(X)/Z_V(X)]_1 the prover consumes). The
// h-vector itself (hCoefficients' intermediate Toeplitz product) is an
// internal staging quantity with its own omega^i/N rotation applied
// afterward by quotientsFromH; this property checks the law at the level
// of its externally observable consequence — the per-point openings the
// h-vector machinery exists to produce — rather than asserting equality
// against the unrotated intermediate form.
func TestToeplitzQuotientCorrectnessProperty(t *testing.T) {
	const n = 8

	srs, err := NewDevSRS(n + 1)
	if err != nil {
		t.Fatalf("building dev SRS: %v", err)
	}
	dom := domainFor(n)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("Feist-Khovratovich quotients match direct per-point KZG openings", prop.ForAll(
		func(table []fr.Element) bool {
			tCoeffs := append([]fr.Element(nil), table...)
			fftFieldInverse(tCoeffs, dom.GeneratorInv)

			got, err := allOpeningProofsG1(srs, tCoeffs)
			if err != nil {
				return false
			}

			omega, _ := rootOfUnity(n)
			var nInv fr.Element
			nInv.SetUint64(n)
			nInv.Inverse(&nInv)
			wPow := fr.One()
			for i := uint64(0); i < n; i++ {
				want, err := commitG1(srs, divideByLinear(tCoeffs, wPow, table[i]))
				if err != nil {
					return false
				}
				var scale fr.Element
				scale.Mul(&wPow, &nInv)
				scaleBig := bigIntOf(scale)
				want.ScalarMultiplication(&want, &scaleBig)
				if !want.Equal(&got[i]) {
					return false
				}
				wPow.Mul(&wPow, &omega)
			}
			return true
		},
		genTable(n),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestPreprocessIdempotenceProperty checks that Preprocess is a pure
// function of its table (and SRS): two calls over the same table produce
// structurally identical PreprocessedTables.
func TestPreprocessIdempotenceProperty(t *testing.T) {
	const tableSize = 8

	srs, err := NewDevSRS(tableSize + 1)
	if err != nil {
		t.Fatalf("building dev SRS: %v", err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("preprocessing the same table twice agrees", prop.ForAll(
		func(table []fr.Element) bool {
			pre1, err := Preprocess(srs, table)
			if err != nil {
				return false
			}
			pre2, err := Preprocess(srs, table)
			if err != nil {
				return false
			}
			diff := cmp.Diff(pre1, pre2, cmp.AllowUnexported(PreprocessedTable{}))
			if diff != "" {
				t.Logf("preprocess mismatch across repeated runs (-first +second):\n%s", diff)
				return false
			}
			return true
		},
		genTable(tableSize),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
