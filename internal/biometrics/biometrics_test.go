package biometrics

import (
	"errors"
	"testing"

	"meal-recommender/internal/profile"
)

func TestComputeBMI(t *testing.T) {
	bmi, err := ComputeBMI(170, 70)
	if err != nil {
		t.Fatalf("ComputeBMI failed: %v", err)
	}
	expected := 70.0 / (1.7 * 1.7)
	if diff := bmi - expected; diff > 0.001 || diff < -0.001 {
		t.Errorf("Expected BMI %.3f, got %.3f", expected, bmi)
	}

	t.Run("MonotonicInWeight", func(t *testing.T) {
		prev := 0.0
		for w := 40.0; w <= 120; w += 10 {
			bmi, err := ComputeBMI(170, w)
			if err != nil {
				t.Fatalf("ComputeBMI(170, %.0f) failed: %v", w, err)
			}
			if bmi <= prev {
				t.Errorf("BMI should increase with weight: %.2f after %.2f", bmi, prev)
			}
			prev = bmi
		}
	})

	t.Run("MonotonicInHeight", func(t *testing.T) {
		prev := 1000.0
		for h := 120.0; h <= 225; h += 15 {
			bmi, err := ComputeBMI(h, 70)
			if err != nil {
				t.Fatalf("ComputeBMI(%.0f, 70) failed: %v", h, err)
			}
			if bmi >= prev {
				t.Errorf("BMI should decrease with height: %.2f after %.2f", bmi, prev)
			}
			prev = bmi
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		if _, err := ComputeBMI(0, 70); !errors.Is(err, profile.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for zero height, got %v", err)
		}
		if _, err := ComputeBMI(170, -5); !errors.Is(err, profile.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for negative weight, got %v", err)
		}
	})
}

func TestClassifyBMI(t *testing.T) {
	cases := []struct {
		bmi      float64
		expected BMICategory
	}{
		{16.0, CategoryUnderweight},
		{18.4, CategoryUnderweight},
		{18.5, CategoryNormal},
		{24.9, CategoryNormal},
		{25.0, CategoryOverweight},
		{29.9, CategoryOverweight},
		{30.0, CategoryObese},
		{42.0, CategoryObese},
	}
	for _, c := range cases {
		if got := ClassifyBMI(c.bmi); got != c.expected {
			t.Errorf("ClassifyBMI(%.1f) = %s, expected %s", c.bmi, got, c.expected)
		}
	}
}

func TestComputeBMR(t *testing.T) {
	t.Run("Male", func(t *testing.T) {
		bmr, err := ComputeBMR(70, 170, 30, profile.GenderMale)
		if err != nil {
			t.Fatalf("ComputeBMR failed: %v", err)
		}
		expected := 10*70.0 + 6.25*170 - 5*30 + 5
		if bmr != expected {
			t.Errorf("Expected BMR %.1f, got %.1f", expected, bmr)
		}
	})

	t.Run("Female", func(t *testing.T) {
		bmr, err := ComputeBMR(60, 160, 25, profile.GenderFemale)
		if err != nil {
			t.Fatalf("ComputeBMR failed: %v", err)
		}
		expected := 10*60.0 + 6.25*160 - 5*25 - 161
		if bmr != expected {
			t.Errorf("Expected BMR %.1f, got %.1f", expected, bmr)
		}
	})

	t.Run("UnrecognizedGender", func(t *testing.T) {
		if _, err := ComputeBMR(70, 170, 30, "unknown"); !errors.Is(err, profile.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for unrecognized gender, got %v", err)
		}
	})
}

func TestComputeCaloricIntake(t *testing.T) {
	bmr := 1500.0

	maintenance := ComputeCaloricIntake(bmr, profile.LifestyleSedentary, profile.GoalMaintenance)
	if maintenance != 1800 {
		t.Errorf("Expected 1800 kcal for sedentary maintenance, got %d", maintenance)
	}

	weightLoss := ComputeCaloricIntake(bmr, profile.LifestyleSedentary, profile.GoalWeightLoss)
	if weightLoss >= maintenance {
		t.Errorf("Weight loss intake %d should be below maintenance %d", weightLoss, maintenance)
	}

	muscleGain := ComputeCaloricIntake(bmr, profile.LifestyleSedentary, profile.GoalMuscleGain)
	if muscleGain <= maintenance {
		t.Errorf("Muscle gain intake %d should be above maintenance %d", muscleGain, maintenance)
	}

	athletic := ComputeCaloricIntake(bmr, profile.LifestyleAthletic, profile.GoalMaintenance)
	if athletic <= maintenance {
		t.Errorf("Athletic intake %d should be above sedentary %d", athletic, maintenance)
	}
}

func TestComputeProteinTarget(t *testing.T) {
	muscleGain := ComputeProteinTarget(70, profile.GoalMuscleGain, profile.LifestyleAthletic)
	cardiac := ComputeProteinTarget(70, profile.GoalCardiac, profile.LifestyleSedentary)
	if muscleGain <= cardiac {
		t.Errorf("Muscle gain/athletic target %dg should exceed cardiac/sedentary %dg", muscleGain, cardiac)
	}

	// 70kg x 2.2 g/kg x 1.2 athletic bonus
	if muscleGain != 185 {
		t.Errorf("Expected 185g for 70kg muscle gain athletic, got %d", muscleGain)
	}

	if got := ComputeProteinTarget(70, profile.GoalMaintenance, profile.LifestyleSedentary); got != 70 {
		t.Errorf("Expected 70g for 70kg maintenance sedentary, got %d", got)
	}

	elderly := ComputeProteinTarget(70, profile.GoalDiabetes, profile.LifestyleElderly)
	sedentary := ComputeProteinTarget(70, profile.GoalDiabetes, profile.LifestyleSedentary)
	if elderly >= sedentary {
		t.Errorf("Elderly target %dg should be below sedentary %dg for the same goal", elderly, sedentary)
	}
}

func TestComputeTargets(t *testing.T) {
	p := &profile.UserProfile{
		Age:           30,
		Gender:        profile.GenderMale,
		HeightCM:      175,
		WeightKG:      72,
		PrimaryGoal:   profile.GoalMaintenance,
		LifestyleType: profile.LifestyleActive,
	}

	targets, err := ComputeTargets(p)
	if err != nil {
		t.Fatalf("ComputeTargets failed: %v", err)
	}
	if targets.BMICategory != CategoryNormal {
		t.Errorf("Expected Normal weight category, got %s", targets.BMICategory)
	}
	if targets.CaloricIntake <= 0 {
		t.Errorf("Expected positive caloric intake, got %d", targets.CaloricIntake)
	}
	if targets.ProteinTargetGrams <= 0 {
		t.Errorf("Expected positive protein target, got %d", targets.ProteinTargetGrams)
	}
	if targets.ActivityFactor != 1.55 {
		t.Errorf("Expected activity factor 1.55 for active lifestyle, got %.3f", targets.ActivityFactor)
	}
}
