package teleporter

import "errors"

// ErrResourceExhausted is returned when an evaluation outgrows the frame
// budget. With the flattened loop and a trial-scoped memo table the
// pending-frame count stays under a few times Modulus, so hitting the
// budget means an invariant is broken, not a transient fault.
var ErrResourceExhausted = errors.New("teleporter: frame budget exhausted")

// DefaultFrameBudget caps the pending-frame stack. States on the stack
// strictly decrease in (r0, r1) order, so genuine evaluations never get
// near it.
const DefaultFrameBudget = 1 << 20

type phase uint8

const (
	phaseTail phase = iota
	phaseInner
	phaseOuter
)

// frame is a suspended call waiting for the result of the state the
// evaluator descended into.
type frame struct {
	r0, r1 Word
	phase  phase
}

// Evaluator computes the confirmation function for one fixed r7:
//
//	f(0, r1)  = r1 + 1
//	f(r0, 0)  = f(r0-1, r7)
//	f(r0, r1) = f(r0-1, f(r0, r1-1))
//
// with every operation wrapping modulo 32768. The naive recursion has
// Ackermann-shaped call counts, so Evaluate runs a descend/unwind loop
// over an explicit frame stack instead: native call depth stays O(1) and
// the memo table collapses repeated sub-problems.
type Evaluator struct {
	r7     Word
	memo   *Memoize
	budget int
}

// NewEvaluator builds an evaluator over memo. A nil memo gets a fresh
// table, which is the right call for a standalone evaluation; the
// sweeper passes its own so it can read the stats afterwards.
func NewEvaluator(r7 Word, memo *Memoize) *Evaluator {
	if memo == nil {
		memo = NewMemoize()
	}
	return &Evaluator{r7: r7, memo: memo, budget: DefaultFrameBudget}
}

// Evaluate returns f(r0, r1) for the evaluator's r7.
func (self *Evaluator) Evaluate(r0, r1 Word) (Word, error) {
	stack := make([]frame, 0, 64)
	var result Word
	for {
		// Descend until a value is known: a memo hit or the base case.
		for {
			if v, ok := self.memo.Get(r0, r1); ok {
				result = v
				break
			}
			if r0 == 0 {
				result = r1.Inc()
				break
			}
			if len(stack) >= self.budget {
				return 0, ErrResourceExhausted
			}
			if r1 == 0 {
				stack = append(stack, frame{r0, r1, phaseTail})
				r0, r1 = r0.Dec(), self.r7
				continue
			}
			// Two-call case: the inner f(r0, r1-1) resolves first, its
			// result becomes the outer call's second argument.
			stack = append(stack, frame{r0, r1, phaseInner})
			r1 = r1.Dec()
		}

		// Unwind completed frames. An inner frame turns into the outer
		// call and descends again; tail and outer frames just record
		// their result and keep unwinding.
		descending := false
		for len(stack) > 0 && !descending {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch f.phase {
			case phaseInner:
				stack = append(stack, frame{f.r0, f.r1, phaseOuter})
				r0, r1 = f.r0.Dec(), result
				descending = true
			default:
				self.memo.Put(f.r0, f.r1, result)
			}
		}
		if !descending {
			return result, nil
		}
	}
}

// Evaluate computes f(r0, r1) under r7 with a fresh memo table.
func Evaluate(r0, r1, r7 Word) (Word, error) {
	return NewEvaluator(r7, nil).Evaluate(r0, r1)
}
