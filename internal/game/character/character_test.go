package character_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/character"
	"github.com/cory-johannsen/pathfinder/internal/game/dice"
	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
	"github.com/cory-johannsen/pathfinder/internal/game/inventory"
	"github.com/cory-johannsen/pathfinder/internal/game/progression"
	"github.com/cory-johannsen/pathfinder/internal/game/ruleset"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
)

type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

func newFactory(t tb) (*character.Factory, *character.SkillManager) {
	t.Helper()
	pm := progression.NewManager(ruleset.DefaultClasses(), zap.NewNop())
	return character.NewFactory(pm, skill.Default(), attribute.PolicyPermissive),
		character.NewSkillManager(pm, skill.Default())
}

func human(t tb) ruleset.Race {
	t.Helper()
	r, err := ruleset.DefaultRaces().Race("human")
	require.NoError(t, err)
	return r
}

// scores returns all six attributes at 10, overridden by mods.
func scores(mods map[attribute.Type]int) []attribute.Detail {
	out := make([]attribute.Detail, 0, len(attribute.All))
	for _, t := range attribute.All {
		base := 10
		if v, ok := mods[t]; ok {
			base = v
		}
		out = append(out, attribute.NewDetail(t, base))
	}
	return out
}

func newFighter(t *testing.T) (*character.Character, *character.Factory, *character.SkillManager) {
	t.Helper()
	f, sm := newFactory(t)
	c, err := f.NewCharacter(human(t),
		[]progression.ClassDetail{{Class: ruleset.Fighter, Level: 1}},
		scores(map[attribute.Type]int{attribute.Strength: 16, attribute.Intelligence: 12}),
	)
	require.NoError(t, err)
	return c, f, sm
}

func TestNewCharacter_Assembles(t *testing.T) {
	c, f, _ := newFighter(t)

	_, err := uuid.Parse(c.ID)
	assert.NoError(t, err)
	assert.Equal(t, "human", c.Race.ID)
	assert.Equal(t, 3, c.AttributeModifier(attribute.Strength))
	assert.Equal(t, 1, c.IntelligenceModifier())
	assert.Equal(t, 1, f.Progression().SummaryLevel(c))
	assert.Zero(t, c.Skills().Total())
}

func TestNewCharacter_DistinctIDs(t *testing.T) {
	a, _, _ := newFighter(t)
	b, _, _ := newFighter(t)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewCharacter_MissingAttribute(t *testing.T) {
	f, _ := newFactory(t)
	attrs := scores(nil)[:5]
	_, err := f.NewCharacter(human(t), nil, attrs)
	assert.ErrorIs(t, err, gameerr.ErrMissingAttribute)
}

func TestNewCharacter_DuplicateAttribute(t *testing.T) {
	f, _ := newFactory(t)
	attrs := append(scores(nil), attribute.NewDetail(attribute.Wisdom, 12))
	_, err := f.NewCharacter(human(t), nil, attrs)
	assert.ErrorIs(t, err, gameerr.ErrDuplicateEntry)
}

func TestNewCharacter_DuplicateClass(t *testing.T) {
	f, _ := newFactory(t)
	_, err := f.NewCharacter(human(t), []progression.ClassDetail{
		{Class: ruleset.Fighter, Level: 1},
		{Class: ruleset.Fighter, Level: 2},
	}, scores(nil))
	assert.ErrorIs(t, err, gameerr.ErrDuplicateEntry)
}

func TestNewCharacter_UnknownClass(t *testing.T) {
	f, _ := newFactory(t)
	_, err := f.NewCharacter(human(t), []progression.ClassDetail{{Class: "BARD", Level: 1}}, scores(nil))
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestNewCharacter_RejectPolicy(t *testing.T) {
	pm := progression.NewManager(ruleset.DefaultClasses(), zap.NewNop())
	f := character.NewFactory(pm, skill.Default(), attribute.PolicyReject)
	_, err := f.NewCharacter(human(t), nil, scores(map[attribute.Type]int{attribute.Charisma: -1}))
	assert.ErrorIs(t, err, gameerr.ErrOutOfRange)
}

func TestCharacter_IsWeaponOwner(t *testing.T) {
	c, _, _ := newFighter(t)
	w, err := inventory.DefaultRegistry().Weapon("LongSword")
	require.NoError(t, err)
	w.SetOwner(c)

	got, err := w.DoDamage(dice.Outcome(5), fixedSrc{v: 99})
	require.NoError(t, err)
	assert.Equal(t, 8, got.Value)
}

func TestSkillPoints_FighterWithIntelligence(t *testing.T) {
	c, _, sm := newFighter(t)
	total, err := sm.TotalSkillPoints(c)
	require.NoError(t, err)
	// 2 per fighter level plus INT modifier 1 per level.
	assert.Equal(t, 3, total)
}

func TestInvestSkillRank_SpendsPointsUpToMaxRank(t *testing.T) {
	c, _, sm := newFighter(t)

	require.NoError(t, sm.InvestSkillRank(c, skill.Climb))
	err := sm.InvestSkillRank(c, skill.Climb)
	assert.ErrorIs(t, err, gameerr.ErrIllegalState, "rank may not exceed character level")
	assert.Equal(t, 1, c.Skills().Of(skill.Climb))

	require.NoError(t, sm.InvestSkillRank(c, skill.Swim))
	require.NoError(t, sm.InvestSkillRank(c, skill.Ride))

	unspent, err := sm.UnspentSkillPoints(c)
	require.NoError(t, err)
	assert.Zero(t, unspent)
	assert.ErrorIs(t, sm.InvestSkillRank(c, skill.Heal), gameerr.ErrIllegalState)
	assert.Zero(t, c.Skills().Of(skill.Heal))
}

func TestInvestSkillRank_UnknownSkill(t *testing.T) {
	c, _, sm := newFighter(t)
	assert.ErrorIs(t, sm.InvestSkillRank(c, "Basketweaving"), gameerr.ErrNotFound)
}

func TestInvestSkillRank_LevelUpRaisesCap(t *testing.T) {
	c, f, sm := newFighter(t)
	require.NoError(t, sm.InvestSkillRank(c, skill.Climb))
	require.NoError(t, f.Progression().LevelUp(c, ruleset.Fighter))
	assert.NoError(t, sm.InvestSkillRank(c, skill.Climb))
	assert.Equal(t, 2, c.Skills().Of(skill.Climb))
}

func TestSkillBonus(t *testing.T) {
	c, _, sm := newFighter(t)
	require.NoError(t, sm.InvestSkillRank(c, skill.Climb))
	require.NoError(t, sm.InvestSkillRank(c, skill.Survival))

	bonus, usable, err := sm.SkillBonus(c, skill.Climb)
	require.NoError(t, err)
	assert.True(t, usable)
	assert.Equal(t, 7, bonus, "1 rank + STR 3 + class skill 3")

	bonus, usable, err = sm.SkillBonus(c, skill.Survival)
	require.NoError(t, err)
	assert.True(t, usable)
	assert.Equal(t, 1, bonus, "Survival is not a fighter class skill")

	bonus, usable, err = sm.SkillBonus(c, skill.Swim)
	require.NoError(t, err)
	assert.True(t, usable)
	assert.Equal(t, 3, bonus, "untrained class skill gets no class bonus")

	bonus, usable, err = sm.SkillBonus(c, skill.DisableDevice)
	require.NoError(t, err)
	assert.False(t, usable)
	assert.Zero(t, bonus)

	_, _, err = sm.SkillBonus(c, "Basketweaving")
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestIsClassSkill_FollowsClasses(t *testing.T) {
	c, f, sm := newFighter(t)
	assert.False(t, sm.IsClassSkill(c, skill.Survival))
	require.NoError(t, f.Progression().AddClass(c, progression.ClassDetail{Class: ruleset.Ranger, Level: 1}))
	assert.True(t, sm.IsClassSkill(c, skill.Survival))
}

func TestRecord_JSONShape(t *testing.T) {
	c, f, sm := newFighter(t)
	c.Name = "Valeros"
	c.Age = 34
	c.EyeColor = "gray"
	require.NoError(t, sm.InvestSkillRank(c, skill.Climb))

	data, err := f.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "name", "age", "height", "weight", "eyeColor", "hairColor", "race", "classes", "attributes", "skills"} {
		assert.Contains(t, raw, key)
	}
	classes := raw["classes"].([]any)
	require.Len(t, classes, 1)
	assert.Equal(t, map[string]any{"type": "FIGHTER", "level": float64(1)}, classes[0])

	attrs := raw["attributes"].([]any)
	require.Len(t, attrs, 6)
	strength := attrs[0].(map[string]any)
	assert.Equal(t, "STRENGTH", strength["type"])
	assert.Equal(t, float64(16), strength["value"])
	assert.Equal(t, float64(3), strength["modifier"])
	assert.Equal(t, map[string]any{"Climb": float64(1)}, raw["skills"])
}

func TestRecord_RoundTrip(t *testing.T) {
	c, f, sm := newFighter(t)
	c.Name = "Valeros"
	c.Height = 182
	c.Weight = 80
	c.HairColor = "black"
	require.NoError(t, f.Progression().AddClass(c, progression.ClassDetail{Class: ruleset.Ranger, Level: 2}))
	require.NoError(t, sm.InvestSkillRank(c, skill.Survival))
	require.NoError(t, c.Attributes().SetTempBonus(attribute.Agility, 4))
	c.Attributes().SetTempModifierBonus(attribute.Wisdom, 1)

	data, err := f.Marshal(c)
	require.NoError(t, err)
	back, err := f.Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, f.ToRecord(c), f.ToRecord(back))
	assert.Equal(t, 3, f.Progression().SummaryLevel(back))
	assert.Equal(t, 2, back.AttributeModifier(attribute.Agility))
	assert.Equal(t, 1, back.AttributeModifier(attribute.Wisdom))
}

func TestFromRecord_RecomputesModifier(t *testing.T) {
	c, f, _ := newFighter(t)
	r := f.ToRecord(c)
	r.Attributes[0].Modifier = 99

	back, err := f.FromRecord(r)
	require.NoError(t, err)
	assert.Equal(t, 3, back.AttributeModifier(attribute.Strength))
}

func TestFromRecord_Rejects(t *testing.T) {
	c, f, _ := newFighter(t)

	r := f.ToRecord(c)
	r.Skills = map[skill.Type]int{"Basketweaving": 1}
	_, err := f.FromRecord(r)
	assert.ErrorIs(t, err, gameerr.ErrNotFound)

	r = f.ToRecord(c)
	r.Classes = append(r.Classes, progression.ClassDetail{Class: ruleset.Fighter, Level: 3})
	_, err = f.FromRecord(r)
	assert.ErrorIs(t, err, gameerr.ErrDuplicateEntry)

	r = f.ToRecord(c)
	r.Attributes = r.Attributes[1:]
	_, err = f.FromRecord(r)
	assert.ErrorIs(t, err, gameerr.ErrMissingAttribute)

	r = f.ToRecord(c)
	r.ID = "not-a-uuid"
	_, err = f.FromRecord(r)
	assert.Error(t, err)

	r = f.ToRecord(c)
	r.Skills = map[skill.Type]int{skill.Climb: 50}
	_, err = f.FromRecord(r)
	assert.ErrorIs(t, err, gameerr.ErrIllegalState, "ranks above character level")

	r = f.ToRecord(c)
	r.Skills = map[skill.Type]int{skill.Climb: 1, skill.Swim: 1, skill.Ride: 1, skill.Survival: 1}
	_, err = f.FromRecord(r)
	assert.ErrorIs(t, err, gameerr.ErrIllegalState, "four ranks on three earned points")
}

func TestFromRecord_AcceptsFullBudget(t *testing.T) {
	c, f, _ := newFighter(t)
	r := f.ToRecord(c)
	r.Skills = map[skill.Type]int{skill.Climb: 1, skill.Swim: 1, skill.Ride: 1}

	back, err := f.FromRecord(r)
	require.NoError(t, err)
	assert.Equal(t, 3, back.Skills().Total())
}

func TestFromRecord_AssignsMissingID(t *testing.T) {
	c, f, _ := newFighter(t)
	r := f.ToRecord(c)
	r.ID = ""
	back, err := f.FromRecord(r)
	require.NoError(t, err)
	assert.NotEmpty(t, back.ID)
}

// Property: unspent points never go negative however ranks are invested.
func TestProperty_InvestNeverOverspends(t *testing.T) {
	skills := skill.Default().All()
	classes := ruleset.DefaultClasses().Types()
	rapid.Check(t, func(rt *rapid.T) {
		f, sm := newFactory(rt)
		ct := rapid.SampledFrom(classes).Draw(rt, "class")
		lvl := rapid.IntRange(1, 5).Draw(rt, "level")
		intel := rapid.IntRange(6, 18).Draw(rt, "int")
		c, err := f.NewCharacter(human(rt),
			[]progression.ClassDetail{{Class: ct, Level: lvl}},
			scores(map[attribute.Type]int{attribute.Intelligence: intel}))
		require.NoError(rt, err)

		picks := rapid.SliceOfN(rapid.SampledFrom(skills), 0, 40).Draw(rt, "picks")
		for _, s := range picks {
			_ = sm.InvestSkillRank(c, s.Type)
			assert.LessOrEqual(rt, c.Skills().Of(s.Type), lvl)
		}
		total, err := sm.TotalSkillPoints(c)
		require.NoError(rt, err)
		assert.LessOrEqual(rt, c.Skills().Total(), max(total, 0))
	})
}
