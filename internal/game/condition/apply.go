package condition

import "github.com/cory-johannsen/pathfinder/internal/game/attribute"

// Sync rewrites the temporary bonuses of store so they equal the totals of s.
// Conditions own the temporary bonus fields: anything set there by hand is
// replaced.
//
// Postcondition: on error (ErrOutOfRange under the reject policy) store is
// left exactly as it was.
func Sync(s *ActiveSet, store *attribute.Store) error {
	prev := store.Details()
	value, modifier := s.Totals()
	for _, t := range attribute.All {
		if err := store.SetTempBonus(t, value[t]); err != nil {
			restore(store, prev)
			return err
		}
		store.SetTempModifierBonus(t, modifier[t])
	}
	return nil
}

func restore(store *attribute.Store, details []attribute.Detail) {
	for _, d := range details {
		// Reverting to values the store already accepted cannot fail.
		_ = store.SetTempBonus(d.Type, d.TempValueBonus)
		store.SetTempModifierBonus(d.Type, d.TempModifierBonus)
	}
}
