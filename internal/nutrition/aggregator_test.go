package nutrition

import (
	"strings"
	"testing"

	"meal-recommender/internal/biometrics"
	"meal-recommender/internal/profile"
)

func TestSummarize(t *testing.T) {
	p := &profile.UserProfile{
		PrimaryGoal:       profile.GoalDiabetes,
		DietaryStrictness: profile.DietVegetarian,
		KnownAllergies:    []string{"nuts"},
	}

	t.Run("BelowTarget", func(t *testing.T) {
		targets := &biometrics.Targets{CaloricIntake: 1800, ProteinTargetGrams: 60}
		s := Summarize(p, targets,
			map[string]int{"breakfast": 450, "lunch": 600, "dinner": 500},
			map[string]int{"breakfast": 10, "lunch": 20, "dinner": 15},
		)

		if s.TotalCalories != 1550 {
			t.Errorf("Expected 1550 total calories, got %d", s.TotalCalories)
		}
		if s.TotalProtein != 45 {
			t.Errorf("Expected 45g total protein, got %d", s.TotalProtein)
		}
		if s.ProteinAdequacy != "75%" {
			t.Errorf("Expected 75%% adequacy, got %s", s.ProteinAdequacy)
		}
		if s.ProteinGap != "15g below target" {
			t.Errorf("Expected 15g gap, got %q", s.ProteinGap)
		}
	})

	t.Run("OverTarget", func(t *testing.T) {
		targets := &biometrics.Targets{CaloricIntake: 2200, ProteinTargetGrams: 60}
		s := Summarize(p, targets,
			map[string]int{"lunch": 700},
			map[string]int{"lunch": 65},
		)

		if s.ProteinAdequacy != "108%" {
			t.Errorf("Expected 108%% adequacy, got %s", s.ProteinAdequacy)
		}
		if s.ProteinGap != "0g, goal achieved" {
			t.Errorf("Expected goal achieved gap, got %q", s.ProteinGap)
		}
	})

	t.Run("ZeroTarget", func(t *testing.T) {
		targets := &biometrics.Targets{CaloricIntake: 2000, ProteinTargetGrams: 0}
		s := Summarize(p, targets, map[string]int{}, map[string]int{})
		if s.ProteinAdequacy != "N/A" {
			t.Errorf("Expected N/A adequacy for zero target, got %s", s.ProteinAdequacy)
		}
	})

	t.Run("Notes", func(t *testing.T) {
		targets := &biometrics.Targets{CaloricIntake: 2000, ProteinTargetGrams: 60}
		s := Summarize(p, targets, map[string]int{}, map[string]int{})
		if !strings.Contains(s.DietaryNotes, "Vegetarian options") {
			t.Errorf("Expected vegetarian note, got %q", s.DietaryNotes)
		}
		if !strings.Contains(s.DietaryNotes, "nuts") {
			t.Errorf("Expected allergen note, got %q", s.DietaryNotes)
		}
		if !strings.Contains(s.PrimaryFocus, "fiber-rich") {
			t.Errorf("Expected diabetes focus, got %q", s.PrimaryFocus)
		}
	})

	t.Run("NoRestrictions", func(t *testing.T) {
		plain := &profile.UserProfile{
			PrimaryGoal:       profile.GoalMaintenance,
			DietaryStrictness: profile.DietNonVegetarian,
		}
		targets := &biometrics.Targets{CaloricIntake: 2000, ProteinTargetGrams: 60}
		s := Summarize(plain, targets, map[string]int{}, map[string]int{})
		if s.DietaryNotes != "No special dietary restrictions" {
			t.Errorf("Expected no-restrictions note, got %q", s.DietaryNotes)
		}
	})
}
