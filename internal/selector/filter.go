package selector

import (
	"errors"
	"fmt"
	"strings"

	"meal-recommender/internal/dish"
	"meal-recommender/internal/profile"
)

// ErrNoCandidates is returned when the hard filter empties a meal slot.
// Callers keep the remaining slots; only the empty slot is flagged.
var ErrNoCandidates = errors.New("no candidate dishes after constraint filtering")

// excludedTagsByDiet maps a dietary strictness to dish tags that violate it.
// Vegetarian and vegan additionally require a positive tag, handled in
// satisfiesDiet. Non-vegetarian excludes nothing: vegetarian dishes are an
// acceptable subset for a non-vegetarian eater.
var excludedTagsByDiet = map[profile.DietaryStrictness][]string{
	profile.DietGlutenFree:       {"gluten"},
	profile.DietDiabeticFriendly: {"sweet", "high-sugar"},
}

// FilterByConstraints removes dishes that violate any hard constraint:
// allergy tag intersection or dietary strictness incompatibility. Returns
// ErrNoCandidates when nothing survives for the slot.
func FilterByConstraints(dishes []dish.Dish, p *profile.UserProfile) ([]dish.Dish, error) {
	allergies := normalizeTags(p.KnownAllergies)

	var out []dish.Dish
	for _, d := range dishes {
		if hasAllergyConflict(d, allergies) {
			continue
		}
		if !satisfiesDiet(d, p.DietaryStrictness) {
			continue
		}
		out = append(out, d)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %d dishes rejected", ErrNoCandidates, len(dishes))
	}
	return out, nil
}

func hasAllergyConflict(d dish.Dish, allergies []string) bool {
	for _, a := range allergies {
		for _, t := range d.Tags {
			if strings.ToLower(t) == a {
				return true
			}
		}
	}
	return false
}

func satisfiesDiet(d dish.Dish, strictness profile.DietaryStrictness) bool {
	switch strictness {
	case profile.DietVegan:
		return d.HasTag("vegan")
	case profile.DietVegetarian:
		// Vegan dishes are a strict subset of vegetarian.
		return d.HasTag("vegetarian") || d.HasTag("vegan")
	default:
		for _, excluded := range excludedTagsByDiet[strictness] {
			if d.HasTag(excluded) {
				return false
			}
		}
		return true
	}
}

func normalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
