package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression ready to be rolled.
//
// Invariant: Count >= 1 and Sides >= 2 after a successful Parse or New.
type Expression struct {
	Raw      string // canonical or original input
	Count    int    // how many times the die is rolled
	Sides    int    // faces per die
	Modifier int    // flat modifier, may be negative
}

// New builds the expression for an N-sided die rolled count times.
func New(count, sides int) (Expression, error) {
	if count < 1 {
		return Expression{}, fmt.Errorf("dice: die count must be >= 1, got %d", count)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: die sides must be >= 2, got %d", sides)
	}
	return Expression{Raw: fmt.Sprintf("%dd%d", count, sides), Count: count, Sides: sides}, nil
}

// Parse parses "d20", "3d20", "2d6+3" or "4d8-2".
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	s := strings.ToLower(strings.TrimSpace(expr))

	countStr, rest, ok := strings.Cut(s, "d")
	if !ok {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	count := 1
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		count = n
	}

	sidesStr, modStr := rest, ""
	if i := strings.IndexAny(rest, "+-"); i > 0 {
		sidesStr, modStr = rest[:i], rest[i:]
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}

	e, err := New(count, sides)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: %q: %w", expr, err)
	}
	if modStr != "" {
		e.Modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
	}
	e.Raw = expr
	return e, nil
}

// MustParse parses expr and panics on error. Useful for package-level values.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
