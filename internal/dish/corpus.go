package dish

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed corpus/menu.json
var embeddedMenu []byte

// Corpus is an immutable index of dishes keyed by meal slot. It is built once
// at process start and is safe for unsynchronized concurrent reads.
type Corpus struct {
	bySlot map[MealSlot][]Dish
	total  int
}

// LoadEmbedded builds the corpus from the menu compiled into the binary.
func LoadEmbedded() (*Corpus, error) {
	return load(embeddedMenu)
}

// LoadFile builds the corpus from an external menu file, for deployments that
// ship a larger dish library than the embedded default.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file %s: %w", path, err)
	}
	return load(data)
}

func load(data []byte) (*Corpus, error) {
	var dishes []Dish
	if err := json.Unmarshal(data, &dishes); err != nil {
		return nil, fmt.Errorf("failed to parse menu JSON: %w", err)
	}

	bySlot := make(map[MealSlot][]Dish)
	for i, d := range dishes {
		if d.Name == "" {
			return nil, fmt.Errorf("menu entry %d has no name", i)
		}
		if d.Calories <= 0 {
			return nil, fmt.Errorf("dish %q has non-positive calories", d.Name)
		}
		if d.ProteinGrams < 0 {
			return nil, fmt.Errorf("dish %q has negative protein", d.Name)
		}
		switch d.MealSlot {
		case SlotBreakfast, SlotLunch, SlotDinner, SlotSnack:
		default:
			return nil, fmt.Errorf("dish %q has unrecognized meal_slot %q", d.Name, d.MealSlot)
		}
		bySlot[d.MealSlot] = append(bySlot[d.MealSlot], d)
	}

	return &Corpus{bySlot: bySlot, total: len(dishes)}, nil
}

// BySlot returns the dishes for one meal slot in stable corpus order. Callers
// must not mutate the returned slice.
func (c *Corpus) BySlot(slot MealSlot) []Dish {
	return c.bySlot[slot]
}

// Len returns the total number of dishes in the corpus.
func (c *Corpus) Len() int {
	return c.total
}

// Stats summarizes the corpus for diagnostics.
type Stats struct {
	TotalDishes int              `json:"total_dishes"`
	BySlot      map[MealSlot]int `json:"meal_slots"`
	ByTag       map[string]int   `json:"tags"`
	ByRegion    map[string]int   `json:"regions"`
}

// ComputeStats counts dishes by slot, tag and region.
func (c *Corpus) ComputeStats() Stats {
	stats := Stats{
		TotalDishes: c.total,
		BySlot:      make(map[MealSlot]int),
		ByTag:       make(map[string]int),
		ByRegion:    make(map[string]int),
	}
	for slot, dishes := range c.bySlot {
		stats.BySlot[slot] = len(dishes)
		for _, d := range dishes {
			for _, t := range d.Tags {
				stats.ByTag[t]++
			}
			if d.Region != "" {
				stats.ByRegion[d.Region]++
			}
		}
	}
	return stats
}
