package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/character"
	"github.com/cory-johannsen/pathfinder/internal/game/progression"
	"github.com/cory-johannsen/pathfinder/internal/game/ruleset"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
	"github.com/cory-johannsen/pathfinder/internal/storage/postgres"
	"github.com/cory-johannsen/pathfinder/internal/testutil"
)

type fixture struct {
	repo    *postgres.CharacterRepository
	factory *character.Factory
	skills  *character.SkillManager
}

func setup(t *testing.T) fixture {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)

	pm := progression.NewManager(ruleset.DefaultClasses(), zap.NewNop())
	f := character.NewFactory(pm, skill.Default(), attribute.PolicyPermissive)
	return fixture{
		repo:    postgres.NewCharacterRepository(pc.Pool, f),
		factory: f,
		skills:  character.NewSkillManager(pm, skill.Default()),
	}
}

func (fx fixture) newRogue(t *testing.T, name string) *character.Character {
	t.Helper()
	race, err := ruleset.DefaultRaces().Race("halfling")
	require.NoError(t, err)
	attrs := make([]attribute.Detail, 0, len(attribute.All))
	for _, at := range attribute.All {
		attrs = append(attrs, attribute.NewDetail(at, 12))
	}
	c, err := fx.factory.NewCharacter(race, []progression.ClassDetail{{Class: ruleset.Rogue, Level: 2}}, attrs)
	require.NoError(t, err)
	c.Name = name
	return c
}

func TestCharacterRepository_SaveAndGet(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	c := fx.newRogue(t, "Merisiel")
	require.NoError(t, fx.skills.InvestSkillRank(c, skill.Stealth))
	require.NoError(t, fx.repo.Save(ctx, c))

	got, err := fx.repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.factory.ToRecord(c), fx.factory.ToRecord(got))
	assert.Equal(t, 1, got.Skills().Of(skill.Stealth))
}

func TestCharacterRepository_SaveUpserts(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	c := fx.newRogue(t, "Merisiel")
	require.NoError(t, fx.repo.Save(ctx, c))
	require.NoError(t, fx.factory.Progression().LevelUp(c, ruleset.Rogue))
	c.Name = "Merisiel the Quick"
	require.NoError(t, fx.repo.Save(ctx, c))

	got, err := fx.repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Merisiel the Quick", got.Name)
	assert.Equal(t, 3, fx.factory.Progression().SummaryLevel(got))

	all, err := fx.repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCharacterRepository_GetNotFound(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	_, err := fx.repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, postgres.ErrCharacterNotFound)
	_, err = fx.repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, postgres.ErrCharacterNotFound)
}

func TestCharacterRepository_ListAndDelete(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	a := fx.newRogue(t, "Alpha")
	b := fx.newRogue(t, "Beta")
	require.NoError(t, fx.repo.SaveAll(ctx, []*character.Character{a, b}))

	all, err := fx.repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	ids := []string{all[0].ID, all[1].ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	require.NoError(t, fx.repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, fx.repo.Delete(ctx, a.ID), postgres.ErrCharacterNotFound)

	all, err = fx.repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}
