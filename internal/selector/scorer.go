package selector

import (
	"sort"
	"strings"

	"meal-recommender/internal/dish"
	"meal-recommender/internal/profile"
)

// ScoredDish pairs a dish with its soft-preference score for one request.
type ScoredDish struct {
	Dish  dish.Dish
	Score float64
}

// Weights for the independent soft-preference signals. Kept in one table so
// the ranking policy can be audited and tuned without touching the scorer.
const (
	weightRegionMatch      = 1.0
	weightFlavorMatch      = 1.0
	weightDietaryMatch     = 1.5
	weightGoalTag          = 2.0
	weightLifestyleTag     = 1.0
	weightPersonaTag       = 0.8
	weightCalorieBand      = 0.5
	weightProteinAlignment = 1.5
)

// goalAlignedTags maps each health goal to the dish tags that serve it.
var goalAlignedTags = map[profile.Goal][]string{
	profile.GoalDiabetes:       {"fiber-rich", "diabetic-friendly"},
	profile.GoalMuscleGain:     {"high-protein"},
	profile.GoalWeightLoss:     {"low-calorie", "weight-loss-friendly", "light"},
	profile.GoalCardiac:        {"heart-healthy", "low-calorie"},
	profile.GoalRecovery:       {"high-protein", "light"},
	profile.GoalMedicalTherapy: {"light", "mild"},
}

// lifestyleAlignedTags maps lifestyle to the dish tags that suit it.
var lifestyleAlignedTags = map[profile.Lifestyle][]string{
	profile.LifestyleElderly:   {"elderly-friendly", "light"},
	profile.LifestyleAthletic:  {"fitness-focused", "high-protein"},
	profile.LifestyleActive:    {"fitness-focused"},
	profile.LifestyleSedentary: {"low-calorie"},
}

// Goals for which a lower-calorie dish wins ties, and goals for which more
// protein wins. Everything else keeps stable corpus order.
var (
	lowerCalorieTieGoals = map[profile.Goal]bool{
		profile.GoalWeightLoss: true,
		profile.GoalCardiac:    true,
		profile.GoalDiabetes:   true,
	}
	higherProteinTieGoals = map[profile.Goal]bool{
		profile.GoalMuscleGain: true,
		profile.GoalRecovery:   true,
	}
)

// ScoreDishes ranks the filtered candidates by soft-preference alignment,
// descending. mealProteinTarget may be zero when no protein signal is wanted.
// The ordering is fully deterministic for identical inputs.
func ScoreDishes(dishes []dish.Dish, p *profile.UserProfile, mealProteinTarget float64) []ScoredDish {
	scored := make([]ScoredDish, 0, len(dishes))
	for _, d := range dishes {
		scored = append(scored, ScoredDish{Dish: d, Score: score(d, p, mealProteinTarget)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		switch {
		case lowerCalorieTieGoals[p.PrimaryGoal]:
			return scored[i].Dish.Calories < scored[j].Dish.Calories
		case higherProteinTieGoals[p.PrimaryGoal]:
			return scored[i].Dish.ProteinGrams > scored[j].Dish.ProteinGrams
		default:
			return false // stable sort keeps corpus order
		}
	})

	return scored
}

func score(d dish.Dish, p *profile.UserProfile, mealProteinTarget float64) float64 {
	var total float64

	if regionMatches(d.Region, p.Region) {
		total += weightRegionMatch
	}
	if p.FlavorPreferences != "" && d.HasTag(strings.ToLower(p.FlavorPreferences)) {
		total += weightFlavorMatch
	}
	if d.HasTag(string(p.DietaryStrictness)) {
		total += weightDietaryMatch
	}
	if d.HasAnyTag(goalAlignedTags[p.PrimaryGoal]) {
		total += weightGoalTag
	}
	if d.HasAnyTag(lifestyleAlignedTags[p.LifestyleType]) {
		total += weightLifestyleTag
	}
	for _, tag := range normalizeTags(p.PersonaTags) {
		if d.HasTag(tag) {
			total += weightPersonaTag
		}
	}
	if calorieBandFits(d, p) {
		total += weightCalorieBand
	}
	if mealProteinTarget > 0 {
		total += weightProteinAlignment * proteinAlignment(d.ProteinGrams, mealProteinTarget)
	}

	return total
}

// proteinAlignment grades how close a dish comes to the meal's protein
// target. The 80-120% band is ideal; far outside the band scores negative.
func proteinAlignment(proteinGrams int, target float64) float64 {
	ratio := float64(proteinGrams) / target
	switch {
	case ratio >= 0.8 && ratio <= 1.2:
		return 3
	case ratio >= 0.6 && ratio <= 1.4:
		return 2
	case ratio >= 0.4 && ratio <= 1.6:
		return 1
	default:
		return -1
	}
}

// calorieBandFits rewards low and moderate calorie dishes for users whose
// goal or lifestyle calls for restraint.
func calorieBandFits(d dish.Dish, p *profile.UserProfile) bool {
	restrained := p.LifestyleType == profile.LifestyleElderly ||
		lowerCalorieTieGoals[p.PrimaryGoal]
	return restrained && d.Calories <= 500
}

// regionMatches compares regions loosely: "West India" matches a corpus
// region of "west" and vice versa.
func regionMatches(dishRegion, userRegion string) bool {
	if dishRegion == "" || userRegion == "" {
		return false
	}
	dr := strings.ToLower(dishRegion)
	ur := strings.ToLower(userRegion)
	return strings.Contains(ur, dr) || strings.Contains(dr, ur)
}
