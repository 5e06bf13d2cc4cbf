package dice

// Roll evaluates expr against src.
//
// Precondition: expr came from Parse or New; src is non-nil.
// Postcondition: len(result.Dice) == expr.Count and every face is in [1, Sides].
func Roll(expr Expression, src Source) RollResult {
	faces := make([]int, expr.Count)
	for i := range faces {
		faces[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       faces,
		Modifier:   expr.Modifier,
	}
}

// RollN rolls an N-sided die count times and returns the combined result.
func RollN(sides, count int, src Source) (RollResult, error) {
	e, err := New(count, sides)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// RollExpr parses expr and rolls it in a single call.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
