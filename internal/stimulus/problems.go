package stimulus

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/berth-dev/triplet/internal/rng"
)

// Operator is an arithmetic operation used in the distraction task.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
)

// Operand ranges, half-open.
const (
	addMin = 10
	addMax = 50
	subMin = 30
	subMax = 80
	// The subtrahend is drawn from [subtrahendMin, minuend-subtrahendGap).
	subtrahendMin = 5
	subtrahendGap = 10
)

// Problem is one distraction trial.
type Problem struct {
	Index int
	A, B  int
	Op    Operator
}

// ID returns the problem's position in the generated list.
func (p Problem) ID() int { return p.Index }

// Text renders the problem as shown in the output file, e.g. "42 - 17".
func (p Problem) Text() string {
	return fmt.Sprintf("%d %s %d", p.A, p.Op, p.B)
}

// Answer evaluates the problem.
func (p Problem) Answer() int {
	if p.Op == OpSub {
		return p.A - p.B
	}
	return p.A + p.B
}

// Expected returns the answer as a decimal numeral.
func (p Problem) Expected() string {
	return strconv.Itoa(p.Answer())
}

// GenerateProblems draws n problems from r. Addition operands are both in
// [10,50). Subtraction draws the minuend from [30,80) and the subtrahend
// from [5, minuend-10), so every difference is at least 11.
func GenerateProblems(r *rand.Rand, n int) []Problem {
	problems := make([]Problem, 0, n)
	for i := 0; i < n; i++ {
		p := Problem{Index: i + 1}
		if r.IntN(2) == 0 {
			p.Op = OpAdd
			p.A = rng.Range(r, addMin, addMax)
			p.B = rng.Range(r, addMin, addMax)
		} else {
			p.Op = OpSub
			p.A = rng.Range(r, subMin, subMax)
			p.B = rng.Range(r, subtrahendMin, p.A-subtrahendGap)
		}
		problems = append(problems, p)
	}
	return problems
}
