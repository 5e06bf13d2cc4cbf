// Package dice provides the randomness abstraction and roll-result types
// consumed by the damage engine. The engine never picks dice itself; callers
// build an Expression from weapon data and hand the RollResult over.
package dice

import (
	"fmt"
	"strings"
)

// RollResult records a single evaluation of an Expression.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // e.g. "3d20"
	Dice       []int  // individual die faces
	Modifier   int    // flat modifier, may be negative
}

// Total returns the sum of all die faces plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// Outcome wraps a precomputed integer as a RollResult. It is used when the
// roll was produced outside this package, e.g. by a table-side physical die.
func Outcome(value int) RollResult {
	return RollResult{Expression: "fixed", Modifier: value}
}

// String renders the roll as "2d6+3 → [4 5] +3 = 12".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	faces := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		faces[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("%s → [%s] %+d = %d", r.Expression, strings.Join(faces, " "), r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Percentile draws a d100 from src, returning a value in [1, 100].
func Percentile(src Source) int {
	return src.Intn(100) + 1
}
