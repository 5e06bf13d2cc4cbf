package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cory-johannsen/pathfinder/internal/game/character"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// CharacterRepository stores each character as its JSON record in a JSONB
// column, with the id and name broken out for lookup.
type CharacterRepository struct {
	pool    *Pool
	factory *character.Factory
}

// NewCharacterRepository creates a CharacterRepository. factory encodes
// characters on write and validates them on read.
//
// Precondition: pool must be open; factory must be non-nil.
func NewCharacterRepository(pool *Pool, factory *character.Factory) *CharacterRepository {
	return &CharacterRepository{pool: pool, factory: factory}
}

const upsertCharacter = `
	INSERT INTO characters (id, name, record)
	VALUES ($1::uuid, $2, $3)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name, record = EXCLUDED.record, updated_at = NOW()`

// Save inserts c or replaces the stored copy.
func (r *CharacterRepository) Save(ctx context.Context, c *character.Character) error {
	data, err := r.factory.Marshal(c)
	if err != nil {
		return err
	}
	if _, err := r.pool.DB().Exec(ctx, upsertCharacter, c.ID, c.Name, data); err != nil {
		return fmt.Errorf("saving character %s: %w", c.ID, err)
	}
	return nil
}

// SaveAll saves every character in one transaction; either all are written
// or none are.
func (r *CharacterRepository) SaveAll(ctx context.Context, cs []*character.Character) error {
	return r.pool.WithTx(ctx, func(tx pgx.Tx) error {
		for _, c := range cs {
			data, err := r.factory.Marshal(c)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, upsertCharacter, c.ID, c.Name, data); err != nil {
				return fmt.Errorf("saving character %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// Get loads the character with the given id.
//
// Postcondition: Returns the Character or ErrCharacterNotFound. A malformed
// id is reported as not found.
func (r *CharacterRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCharacterNotFound
	}
	var data []byte
	err := r.pool.DB().QueryRow(ctx, `SELECT record FROM characters WHERE id = $1::uuid`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}
	return r.factory.Unmarshal(data)
}

// List returns every stored character, oldest first.
func (r *CharacterRepository) List(ctx context.Context) ([]*character.Character, error) {
	rows, err := r.pool.DB().Query(ctx, `SELECT record FROM characters ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("scanning character rows: %w", err)
	}

	out := make([]*character.Character, 0, len(records))
	for _, data := range records {
		c, err := r.factory.Unmarshal(data)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Delete removes the character with the given id.
//
// Postcondition: Returns ErrCharacterNotFound if no row was removed.
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrCharacterNotFound
	}
	tag, err := r.pool.DB().Exec(ctx, `DELETE FROM characters WHERE id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}
