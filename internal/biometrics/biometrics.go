package biometrics

import (
	"fmt"
	"math"

	"meal-recommender/internal/profile"
)

// BMICategory classifies a BMI value into the standard weight bands.
type BMICategory string

const (
	CategoryUnderweight BMICategory = "Underweight"
	CategoryNormal      BMICategory = "Normal weight"
	CategoryOverweight  BMICategory = "Overweight"
	CategoryObese       BMICategory = "Obese"
)

// Targets holds the per-request numeric targets derived from a profile.
type Targets struct {
	BMI                float64     `json:"bmi"`
	BMICategory        BMICategory `json:"bmi_category"`
	BMR                float64     `json:"bmr"`
	ActivityFactor     float64     `json:"activity_factor"`
	CaloricIntake      int         `json:"caloric_intake"`
	ProteinTargetGrams int         `json:"daily_protein_target"`
}

// activityFactors maps lifestyle to the TDEE multiplier. Elderly users get the
// sedentary factor; their protein handling differs instead (see proteinBonus).
var activityFactors = map[profile.Lifestyle]float64{
	profile.LifestyleSedentary: 1.2,
	profile.LifestyleActive:    1.55,
	profile.LifestyleAthletic:  1.725,
	profile.LifestyleElderly:   1.2,
}

// goalCalorieAdjustments scales the activity-adjusted intake per health goal.
var goalCalorieAdjustments = map[profile.Goal]float64{
	profile.GoalWeightLoss: 0.85,
	profile.GoalMuscleGain: 1.15,
	profile.GoalRecovery:   1.10,
}

// proteinGramsPerKG is the base daily protein requirement keyed by goal.
var proteinGramsPerKG = map[profile.Goal]float64{
	profile.GoalMuscleGain:     2.2,
	profile.GoalRecovery:       1.8,
	profile.GoalWeightLoss:     1.6,
	profile.GoalMedicalTherapy: 1.4,
	profile.GoalCardiac:        1.2,
	profile.GoalDiabetes:       1.2,
	profile.GoalMaintenance:    1.0,
}

// proteinLifestyleMultipliers adjusts the base requirement for activity level.
var proteinLifestyleMultipliers = map[profile.Lifestyle]float64{
	profile.LifestyleAthletic:  1.2,
	profile.LifestyleActive:    1.1,
	profile.LifestyleSedentary: 1.0,
	profile.LifestyleElderly:   0.9,
}

// ComputeBMI returns weight divided by height squared (metric).
func ComputeBMI(heightCM, weightKG float64) (float64, error) {
	if heightCM <= 0 {
		return 0, fmt.Errorf("%w: height_cm must be positive, got %.1f", profile.ErrInvalidInput, heightCM)
	}
	if weightKG <= 0 {
		return 0, fmt.Errorf("%w: weight_kg must be positive, got %.1f", profile.ErrInvalidInput, weightKG)
	}
	heightM := heightCM / 100
	return weightKG / (heightM * heightM), nil
}

// ClassifyBMI maps a BMI value onto its category. Band upper bounds are
// exclusive: 24.9 is still Normal, 25.0 is Overweight.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// ComputeBMR calculates basal metabolic rate with the Mifflin-St Jeor
// equation. Gender Other uses the female constant, the conservative branch.
func ComputeBMR(weightKG, heightCM float64, age int, gender profile.Gender) (float64, error) {
	if weightKG <= 0 || heightCM <= 0 {
		return 0, fmt.Errorf("%w: weight and height must be positive", profile.ErrInvalidInput)
	}
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch gender {
	case profile.GenderMale:
		return base + 5, nil
	case profile.GenderFemale, profile.GenderOther:
		return base - 161, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized gender %q", profile.ErrInvalidInput, gender)
	}
}

// ActivityFactor returns the TDEE multiplier for a lifestyle, defaulting to
// sedentary for anything unrecognized.
func ActivityFactor(lifestyle profile.Lifestyle) float64 {
	if f, ok := activityFactors[lifestyle]; ok {
		return f
	}
	return activityFactors[profile.LifestyleSedentary]
}

// ComputeCaloricIntake scales BMR by the activity factor and applies the
// per-goal adjustment (deficit for weight loss, surplus for muscle gain).
func ComputeCaloricIntake(bmr float64, lifestyle profile.Lifestyle, goal profile.Goal) int {
	intake := bmr * ActivityFactor(lifestyle)
	if adj, ok := goalCalorieAdjustments[goal]; ok {
		intake *= adj
	}
	return int(math.Round(intake))
}

// ComputeProteinTarget derives the daily protein requirement in grams from
// body weight, goal and lifestyle. Result is rounded and never negative.
func ComputeProteinTarget(weightKG float64, goal profile.Goal, lifestyle profile.Lifestyle) int {
	perKG, ok := proteinGramsPerKG[goal]
	if !ok {
		perKG = 1.0
	}
	mult, ok := proteinLifestyleMultipliers[lifestyle]
	if !ok {
		mult = 1.0
	}
	grams := weightKG * perKG * mult
	if grams < 0 {
		return 0
	}
	return int(math.Round(grams))
}

// ComputeTargets derives all numeric targets for one planning request.
func ComputeTargets(p *profile.UserProfile) (*Targets, error) {
	bmi, err := ComputeBMI(p.HeightCM, p.WeightKG)
	if err != nil {
		return nil, err
	}

	bmr, err := ComputeBMR(p.WeightKG, p.HeightCM, p.Age, p.Gender)
	if err != nil {
		return nil, err
	}

	return &Targets{
		BMI:                math.Round(bmi*10) / 10,
		BMICategory:        ClassifyBMI(bmi),
		BMR:                math.Round(bmr*10) / 10,
		ActivityFactor:     ActivityFactor(p.LifestyleType),
		CaloricIntake:      ComputeCaloricIntake(bmr, p.LifestyleType, p.PrimaryGoal),
		ProteinTargetGrams: ComputeProteinTarget(p.WeightKG, p.PrimaryGoal, p.LifestyleType),
	}, nil
}
