package nutrition

import (
	"fmt"
	"math"
	"strings"

	"meal-recommender/internal/biometrics"
	"meal-recommender/internal/profile"
)

// Summary reports how the assembled plan measures up against the user's
// computed targets. Derived once per request, read-only afterwards.
type Summary struct {
	TotalCalories      int    `json:"total_calories"`
	TotalProtein       int    `json:"total_protein"`
	DailyProteinTarget int    `json:"daily_protein_target"`
	ProteinAdequacy    string `json:"protein_adequacy"`
	ProteinGap         string `json:"protein_gap"`
	TargetCalories     string `json:"target_calories"`
	MealDistribution   string `json:"meal_distribution"`
	PrimaryFocus       string `json:"primary_focus"`
	DietaryNotes       string `json:"dietary_notes"`
}

var goalRecommendations = map[profile.Goal]string{
	profile.GoalWeightLoss:  "Focus on portion control and nutrient-dense, low-calorie foods",
	profile.GoalMuscleGain:  "Emphasize protein-rich foods and adequate caloric intake",
	profile.GoalMaintenance: "Balanced macronutrient distribution for sustained energy",
	profile.GoalCardiac:     "Heart-healthy foods low in sodium and saturated fats",
	profile.GoalDiabetes:    "Complex carbohydrates and fiber-rich foods for blood sugar control",
	profile.GoalRecovery:    "Anti-inflammatory foods and adequate protein for healing",
}

// Summarize sums calories and protein across the plan and compares them with
// the daily targets. A zero protein target reports adequacy as N/A instead of
// dividing by zero.
func Summarize(p *profile.UserProfile, targets *biometrics.Targets, mealCalories, mealProteins map[string]int) Summary {
	var totalCalories, totalProtein int
	for _, c := range mealCalories {
		totalCalories += c
	}
	for _, g := range mealProteins {
		totalProtein += g
	}

	s := Summary{
		TotalCalories:      totalCalories,
		TotalProtein:       totalProtein,
		DailyProteinTarget: targets.ProteinTargetGrams,
		TargetCalories:     fmt.Sprintf("%d kcal", targets.CaloricIntake),
		MealDistribution: fmt.Sprintf("Breakfast: %d | Lunch: %d | Dinner: %d",
			mealCalories["breakfast"], mealCalories["lunch"], mealCalories["dinner"]),
		PrimaryFocus: goalRecommendation(p.PrimaryGoal),
		DietaryNotes: dietaryNotes(p),
	}

	if targets.ProteinTargetGrams <= 0 {
		s.ProteinAdequacy = "N/A"
		s.ProteinGap = "N/A"
		return s
	}

	pct := int(math.Round(float64(totalProtein) / float64(targets.ProteinTargetGrams) * 100))
	s.ProteinAdequacy = fmt.Sprintf("%d%%", pct)

	gap := targets.ProteinTargetGrams - totalProtein
	if gap <= 0 {
		s.ProteinGap = "0g, goal achieved"
	} else {
		s.ProteinGap = fmt.Sprintf("%dg below target", gap)
	}
	return s
}

func goalRecommendation(goal profile.Goal) string {
	if rec, ok := goalRecommendations[goal]; ok {
		return rec
	}
	return "Balanced nutrition for overall health"
}

func dietaryNotes(p *profile.UserProfile) string {
	var notes []string

	switch p.DietaryStrictness {
	case profile.DietVegan:
		notes = append(notes, "Plant-based protein sources included")
	case profile.DietVegetarian:
		notes = append(notes, "Vegetarian options with dairy and eggs")
	case profile.DietGlutenFree:
		notes = append(notes, "All gluten-containing ingredients avoided")
	}

	if len(p.KnownAllergies) > 0 {
		notes = append(notes, "Avoided allergens: "+strings.Join(p.KnownAllergies, ", "))
	}

	if len(notes) == 0 {
		return "No special dietary restrictions"
	}
	return strings.Join(notes, "; ")
}
