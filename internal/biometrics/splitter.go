package biometrics

import (
	"fmt"
	"math"

	"meal-recommender/internal/profile"
)

// Standard calorie distribution across the three main meals. The remainder
// after rounding goes to snacks when the frequency includes them.
const (
	breakfastShare = 0.275
	lunchShare     = 0.325
	dinnerShare    = 0.275
)

// Per-meal protein distribution as a fraction of the daily target.
var proteinShares = map[string]float64{
	"breakfast": 0.25,
	"lunch":     0.35,
	"dinner":    0.30,
	"snack":     0.05, // per snack
}

// SplitCalories divides the daily caloric intake across meals, rounding each
// meal to the nearest 10 kcal. With the snacks frequency the rounding
// remainder is split evenly across the two snacks.
func SplitCalories(totalCalories int, frequency profile.MealFrequency) (map[string]int, error) {
	if totalCalories <= 0 {
		return nil, fmt.Errorf("%w: total calories must be positive, got %d", profile.ErrInvalidInput, totalCalories)
	}

	roundTo10 := func(v float64) int {
		return int(math.Round(v/10)) * 10
	}

	total := float64(totalCalories)
	split := map[string]int{
		"breakfast": roundTo10(total * breakfastShare),
		"lunch":     roundTo10(total * lunchShare),
		"dinner":    roundTo10(total * dinnerShare),
	}

	switch frequency {
	case profile.FrequencyThreeMeals:
	case profile.FrequencyMealsAndSnacks:
		remaining := totalCalories - split["breakfast"] - split["lunch"] - split["dinner"]
		snack := roundTo10(float64(remaining) / 2)
		split["snack_1"] = snack
		split["snack_2"] = snack
	default:
		return nil, fmt.Errorf("%w: unrecognized meal frequency %q", profile.ErrInvalidInput, frequency)
	}

	return split, nil
}

// MealProteinTarget returns the protein target in grams for one meal slot.
func MealProteinTarget(dailyProteinGrams int, slot string) float64 {
	share, ok := proteinShares[slot]
	if !ok {
		share = 0.25
	}
	return float64(dailyProteinGrams) * share
}
