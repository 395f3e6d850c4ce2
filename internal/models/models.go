package models

import "time"

// --- Reference Data ---

// Record is one creature as returned by the Pokemon endpoint. A fetch always
// produces a complete Record; it is never patched in place.
type Record struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	HeightDecimeters int      `json:"height"`
	WeightHectograms int      `json:"weight"`
	Types            []string `json:"types"`
	Stats            []Stat   `json:"stats"`
}

// Stat is a single base stat, in the order the API listed it.
type Stat struct {
	Name string `json:"name"`
	Base int    `json:"base_stat"`
}

// StatByName returns the base value of the named stat.
func (r Record) StatByName(name string) (int, bool) {
	for _, s := range r.Stats {
		if s.Name == name {
			return s.Base, true
		}
	}
	return 0, false
}

// StatAt returns the base value at a position of the stats sequence.
func (r Record) StatAt(i int) (int, bool) {
	if i < 0 || i >= len(r.Stats) {
		return 0, false
	}
	return r.Stats[i].Base, true
}

// --- Dump ---

// LastFetch is what gets written to the dump sink after a successful fetch.
type LastFetch struct {
	Identifier string    `json:"identifier"`
	PokemonID  int       `json:"pokemon_id"`
	Name       string    `json:"name"`
	RawJSON    string    `json:"-"`
	FetchedAt  time.Time `json:"fetched_at"`
}
