package teleporter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// naive is the recurrence exactly as written, no memoization and no
// flattening. Only usable for tiny arguments; it is the oracle the
// real evaluator is checked against.
func naive(r0, r1, r7 Word) Word {
	if r0 == 0 {
		return r1.Inc()
	}
	if r1 == 0 {
		return naive(r0.Dec(), r7, r7)
	}
	return naive(r0.Dec(), naive(r0, r1.Dec(), r7), r7)
}

func eval(t *testing.T, r0, r1, r7 Word) Word {
	t.Helper()
	v, err := Evaluate(r0, r1, r7)
	require.NoError(t, err)
	return v
}

func TestBaseCase(t *testing.T) {
	for _, r1 := range []Word{0, 1, 5, 100, 32766, 32767} {
		for _, r7 := range []Word{0, 1, 7, 32767} {
			require.Equal(t, r1.Inc(), eval(t, 0, r1, r7))
		}
	}
}

func TestConcreteScenarios(t *testing.T) {
	// f(0, 5) is 6 regardless of r7.
	require.Equal(t, Word(6), eval(t, 0, 5, 0))
	require.Equal(t, Word(6), eval(t, 0, 5, 9999))

	// f(1, 0) collapses to f(0, r7).
	require.Equal(t, Word(8), eval(t, 1, 0, 7))
	require.Equal(t, eval(t, 0, 7, 7), eval(t, 1, 0, 7))

	// f(1, 1) = f(0, f(1, 0)).
	inner := eval(t, 1, 0, 1)
	require.Equal(t, eval(t, 0, inner, 1), eval(t, 1, 1, 1))
}

func TestWrapAround(t *testing.T) {
	require.Equal(t, Word(0), eval(t, 0, 32767, 0))
	// f(1, 0) with r7=32767 is f(0, 32767) = 0.
	require.Equal(t, Word(0), eval(t, 1, 0, 32767))
}

func TestClosure(t *testing.T) {
	for _, r0 := range []Word{0, 1, 2, 3} {
		for _, r1 := range []Word{0, 1, 5, 32767} {
			for _, r7 := range []Word{0, 1, 2, 32767} {
				v := eval(t, r0, r1, r7)
				require.LessOrEqual(t, v, MaxWord)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := eval(t, 3, 3, 5)
	b := eval(t, 3, 3, 5)
	require.Equal(t, a, b)
}

// Memoization and flattening are cost optimizations only: on arguments
// small enough for the naive recursion, both definitions must agree.
func TestMatchesNaiveDefinition(t *testing.T) {
	for r0 := Word(0); r0 <= 2; r0++ {
		for r1 := Word(0); r1 <= 4; r1++ {
			for r7 := Word(0); r7 <= 3; r7++ {
				require.Equal(t, naive(r0, r1, r7), eval(t, r0, r1, r7),
					"f(%d, %d) under r7=%d", r0, r1, r7)
			}
		}
	}
	for r1 := Word(0); r1 <= 2; r1++ {
		for r7 := Word(0); r7 <= 2; r7++ {
			require.Equal(t, naive(3, r1, r7), eval(t, 3, r1, r7),
				"f(3, %d) under r7=%d", r1, r7)
		}
	}
}

func TestFrameBudgetExhaustion(t *testing.T) {
	e := NewEvaluator(5, nil)
	e.budget = 1
	_, err := e.Evaluate(2, 2)
	require.ErrorIs(t, err, ErrResourceExhausted)
}

// The canonical inputs: without flattening and memoization this does
// not finish; with them it is quick for any r7.
func TestCanonicalEvaluation(t *testing.T) {
	v := eval(t, 4, 1, 1)
	require.LessOrEqual(t, v, MaxWord)

	memo := NewMemoize()
	_, err := NewEvaluator(32767, memo).Evaluate(4, 1)
	require.NoError(t, err)
	require.Greater(t, memo.Size(), 0)
}
