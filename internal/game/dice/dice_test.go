package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pathfinder/internal/game/dice"
)

// fixedSrc always returns min(v, n-1).
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestOutcome_TotalIsValue(t *testing.T) {
	assert.Equal(t, 5, dice.Outcome(5).Total())
	assert.Empty(t, dice.Outcome(5).Dice)
}

func TestRollResult_Total_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		faces := rapid.SliceOf(rapid.IntRange(1, 20)).Draw(rt, "dice")
		modifier := rapid.IntRange(-100, 100).Draw(rt, "modifier")
		r := dice.RollResult{Expression: "Nd20+M", Dice: faces, Modifier: modifier}

		expected := modifier
		for _, d := range faces {
			expected += d
		}
		assert.Equal(rt, expected, r.Total())
		assert.True(rt, strings.Contains(r.String(), fmt.Sprintf("= %d", expected)))
	})
}

func TestParse(t *testing.T) {
	cases := []struct {
		in                    string
		count, sides, modifer int
	}{
		{"d20", 1, 20, 0},
		{"3d20", 3, 20, 0},
		{"2d6+3", 2, 6, 3},
		{"4D8-2", 4, 8, -2},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			e, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.count, e.Count)
			assert.Equal(t, tc.sides, e.Sides)
			assert.Equal(t, tc.modifer, e.Modifier)
			assert.Equal(t, tc.in, e.Raw)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "20", "0d6", "2d1", "xd6", "2dx", "2d6+y"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected %q to be rejected", in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
	assert.NotPanics(t, func() { dice.MustParse("1d8") })
}

func TestRoll_FacesInRange_Property(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 100).Draw(rt, "sides")
		r, err := dice.RollN(sides, count, src)
		require.NoError(rt, err)
		require.Len(rt, r.Dice, count)
		for _, d := range r.Dice {
			assert.GreaterOrEqual(rt, d, 1)
			assert.LessOrEqual(rt, d, sides)
		}
	})
}

func TestRollN_RejectsBadShape(t *testing.T) {
	_, err := dice.RollN(1, 3, fixedSrc{})
	assert.Error(t, err)
	_, err = dice.RollN(20, 0, fixedSrc{})
	assert.Error(t, err)
}

func TestRollExpr_FixedSource(t *testing.T) {
	r, err := dice.RollExpr("3d20+1", fixedSrc{v: 4})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5, 5}, r.Dice)
	assert.Equal(t, 16, r.Total())
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(20), b.Intn(20))
	}
	assert.Panics(t, func() { a.Intn(0) })
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
	assert.Panics(t, func() { src.Intn(0) })
}

func TestPercentile_Bounds(t *testing.T) {
	assert.Equal(t, 1, dice.Percentile(fixedSrc{v: 0}))
	assert.Equal(t, 100, dice.Percentile(fixedSrc{v: 1000}))
}

func TestLoggedRoller_Roll(t *testing.T) {
	r := dice.NewLoggedRoller(fixedSrc{v: 7}, zap.NewNop())
	res, err := r.RollExpr("2d8")
	require.NoError(t, err)
	assert.Equal(t, 16, res.Total())
	_, err = r.RollExpr("bogus")
	assert.Error(t, err)
}
