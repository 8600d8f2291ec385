package profile

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a profile that fails range or enum validation.
// Requests carrying such a profile are rejected before any computation.
var ErrInvalidInput = errors.New("invalid input")

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type Goal string

const (
	GoalCardiac        Goal = "Cardiac"
	GoalDiabetes       Goal = "Diabetes"
	GoalMaintenance    Goal = "Maintenance"
	GoalMedicalTherapy Goal = "Medical Therapy"
	GoalMuscleGain     Goal = "Muscle Gain"
	GoalRecovery       Goal = "Recovery"
	GoalWeightLoss     Goal = "Weight Loss"
)

type Lifestyle string

const (
	LifestyleSedentary Lifestyle = "sedentary"
	LifestyleActive    Lifestyle = "active"
	LifestyleAthletic  Lifestyle = "athletic"
	LifestyleElderly   Lifestyle = "elderly"
)

type DietaryStrictness string

const (
	DietVegetarian       DietaryStrictness = "vegetarian"
	DietVegan            DietaryStrictness = "vegan"
	DietNonVegetarian    DietaryStrictness = "non-vegetarian"
	DietGlutenFree       DietaryStrictness = "gluten-free"
	DietDiabeticFriendly DietaryStrictness = "diabetic-friendly"
)

type MealFrequency string

const (
	FrequencyThreeMeals     MealFrequency = "3 meals"
	FrequencyMealsAndSnacks MealFrequency = "3 meals + 2 snacks"
)

// Valid age range accepted by the intake form; the engine re-checks it
// because profiles may also arrive from batch jobs that skip the form.
const (
	MinAge = 14
	MaxAge = 75
)

// UserProfile is an immutable snapshot of one planning request.
type UserProfile struct {
	Name               string            `json:"name"`
	Age                int               `json:"age"`
	Gender             Gender            `json:"gender"`
	HeightCM           float64           `json:"height_cm"`
	WeightKG           float64           `json:"weight_kg"`
	Region             string            `json:"region"`
	PrimaryGoal        Goal              `json:"primary_goal"`
	LifestyleType      Lifestyle         `json:"lifestyle_type"`
	DietaryStrictness  DietaryStrictness `json:"dietary_strictness"`
	KnownAllergies     []string          `json:"known_allergies"`
	PreferredMealTimes []string          `json:"preferred_meal_times"`
	FlavorPreferences  string            `json:"flavor_preferences"`
	PersonaTags        []string          `json:"persona_tags"`
	MealFrequency      MealFrequency     `json:"meal_frequency,omitempty"`
}

// Validate checks numeric ranges and enum membership. The web form validates
// these upstream, but the engine never trusts its callers with biometrics.
func (p *UserProfile) Validate() error {
	if p.HeightCM <= 0 {
		return fmt.Errorf("%w: height_cm must be positive, got %.1f", ErrInvalidInput, p.HeightCM)
	}
	if p.WeightKG <= 0 {
		return fmt.Errorf("%w: weight_kg must be positive, got %.1f", ErrInvalidInput, p.WeightKG)
	}
	if p.Age < MinAge || p.Age > MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d, got %d", ErrInvalidInput, MinAge, MaxAge, p.Age)
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("%w: unrecognized gender %q", ErrInvalidInput, p.Gender)
	}
	switch p.LifestyleType {
	case LifestyleSedentary, LifestyleActive, LifestyleAthletic, LifestyleElderly:
	default:
		return fmt.Errorf("%w: unrecognized lifestyle_type %q", ErrInvalidInput, p.LifestyleType)
	}
	return nil
}

// Frequency returns the requested meal frequency, defaulting to the full
// 3 meals + 2 snacks day when the profile leaves it unset.
func (p *UserProfile) Frequency() MealFrequency {
	if p.MealFrequency == "" {
		return FrequencyMealsAndSnacks
	}
	return p.MealFrequency
}
