package skill

import "sort"

// Ranks tracks the ranks a character has invested per skill.
//
// Ranks is not safe for concurrent mutation.
type Ranks struct {
	ranks map[Type]int
}

// NewRanks returns an empty rank table.
func NewRanks() *Ranks {
	return &Ranks{ranks: make(map[Type]int)}
}

// Of returns the ranks held in t.
func (r *Ranks) Of(t Type) int {
	return r.ranks[t]
}

// Total returns the sum of all invested ranks.
func (r *Ranks) Total() int {
	total := 0
	for _, n := range r.ranks {
		total += n
	}
	return total
}

// Add invests n more ranks in t.
func (r *Ranks) Add(t Type, n int) {
	r.ranks[t] += n
}

// Snapshot returns a copy of the non-zero entries.
func (r *Ranks) Snapshot() map[Type]int {
	out := make(map[Type]int, len(r.ranks))
	for t, n := range r.ranks {
		if n > 0 {
			out[t] = n
		}
	}
	return out
}

// Types returns every skill with ranks, sorted by name.
func (r *Ranks) Types() []Type {
	out := make([]Type, 0, len(r.ranks))
	for t, n := range r.ranks {
		if n > 0 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Replace swaps the whole table for m, dropping prior entries.
func (r *Ranks) Replace(m map[Type]int) {
	r.ranks = make(map[Type]int, len(m))
	for t, n := range m {
		if n > 0 {
			r.ranks[t] = n
		}
	}
}
