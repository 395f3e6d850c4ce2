package pokeapi

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/nzvengeance/pokedex/internal/models"
)

// Raw API response types. Scalars are pointers so an absent key can be told
// apart from a zero value.

type apiPokemon struct {
	ID     *int          `json:"id"`
	Name   *string       `json:"name"`
	Height *int          `json:"height"`
	Weight *int          `json:"weight"`
	Types  []apiTypeSlot `json:"types"`
	Stats  []apiStat     `json:"stats"`
}

type apiTypeSlot struct {
	Slot int         `json:"slot"`
	Type apiResource `json:"type"`
}

type apiStat struct {
	BaseStat *int        `json:"base_stat"`
	Stat     apiResource `json:"stat"`
}

type apiResource struct {
	Name *string `json:"name"`
	URL  string  `json:"url"`
}

// ParsePokemon decodes a /pokemon/{identifier} body into a Record. Any missing
// key is reported as ErrNotFound.
func ParsePokemon(body []byte) (models.Record, error) {
	var raw apiPokemon
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Record{}, fmt.Errorf("%w: decoding payload: %v", ErrNotFound, err)
	}

	switch {
	case raw.ID == nil:
		return models.Record{}, missingKey("id")
	case raw.Name == nil || *raw.Name == "":
		return models.Record{}, missingKey("name")
	case raw.Height == nil:
		return models.Record{}, missingKey("height")
	case raw.Weight == nil:
		return models.Record{}, missingKey("weight")
	case raw.Types == nil:
		return models.Record{}, missingKey("types")
	case raw.Stats == nil:
		return models.Record{}, missingKey("stats")
	}
	if *raw.ID < 1 {
		return models.Record{}, fmt.Errorf("%w: invalid id %d", ErrNotFound, *raw.ID)
	}

	slots := make([]apiTypeSlot, len(raw.Types))
	copy(slots, raw.Types)
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })

	types := make([]string, 0, len(slots))
	for i, ts := range slots {
		if ts.Type.Name == nil {
			return models.Record{}, missingKey(fmt.Sprintf("types[%d].type.name", i))
		}
		types = append(types, *ts.Type.Name)
	}

	stats := make([]models.Stat, 0, len(raw.Stats))
	for i, st := range raw.Stats {
		if st.BaseStat == nil {
			return models.Record{}, missingKey(fmt.Sprintf("stats[%d].base_stat", i))
		}
		var name string
		if st.Stat.Name != nil {
			name = *st.Stat.Name
		}
		stats = append(stats, models.Stat{Name: name, Base: *st.BaseStat})
	}

	return models.Record{
		ID:               *raw.ID,
		Name:             *raw.Name,
		HeightDecimeters: *raw.Height,
		WeightHectograms: *raw.Weight,
		Types:            types,
		Stats:            stats,
	}, nil
}

func missingKey(key string) error {
	return fmt.Errorf("%w: payload missing %q", ErrNotFound, key)
}
