package biometrics

import (
	"errors"
	"testing"

	"meal-recommender/internal/profile"
)

func TestSplitCalories(t *testing.T) {
	t.Run("MealsAndSnacks", func(t *testing.T) {
		split, err := SplitCalories(2000, profile.FrequencyMealsAndSnacks)
		if err != nil {
			t.Fatalf("SplitCalories failed: %v", err)
		}

		if split["breakfast"] != 550 {
			t.Errorf("Expected 550 kcal breakfast, got %d", split["breakfast"])
		}
		if split["lunch"] != 650 {
			t.Errorf("Expected 650 kcal lunch, got %d", split["lunch"])
		}
		if split["dinner"] != 550 {
			t.Errorf("Expected 550 kcal dinner, got %d", split["dinner"])
		}
		if split["snack_1"] != split["snack_2"] {
			t.Errorf("Snacks should split evenly, got %d and %d", split["snack_1"], split["snack_2"])
		}

		for meal, kcal := range split {
			if kcal%10 != 0 {
				t.Errorf("%s calories %d not rounded to nearest 10", meal, kcal)
			}
		}
	})

	t.Run("ThreeMealsOnly", func(t *testing.T) {
		split, err := SplitCalories(1800, profile.FrequencyThreeMeals)
		if err != nil {
			t.Fatalf("SplitCalories failed: %v", err)
		}
		if len(split) != 3 {
			t.Errorf("Expected 3 meals, got %d", len(split))
		}
		if _, ok := split["snack_1"]; ok {
			t.Error("Three-meal frequency should not include snacks")
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		if _, err := SplitCalories(0, profile.FrequencyThreeMeals); !errors.Is(err, profile.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for zero calories, got %v", err)
		}
		if _, err := SplitCalories(2000, "5 meals"); !errors.Is(err, profile.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for unknown frequency, got %v", err)
		}
	})
}

func TestMealProteinTarget(t *testing.T) {
	daily := 100

	lunch := MealProteinTarget(daily, "lunch")
	if lunch != 35 {
		t.Errorf("Expected 35g lunch protein target, got %.1f", lunch)
	}

	snack := MealProteinTarget(daily, "snack")
	if snack != 5 {
		t.Errorf("Expected 5g snack protein target, got %.1f", snack)
	}

	if MealProteinTarget(daily, "breakfast") >= lunch {
		t.Error("Lunch should carry the largest protein share")
	}
}
