package explain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"meal-recommender/internal/biometrics"
	"meal-recommender/internal/dish"
	"meal-recommender/internal/llm"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/shared"
)

type mockTextGenerator struct {
	response llm.ContentResponse
	err      error
	calls    int
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.calls++
	return m.response, m.err
}

func testProfile() *profile.UserProfile {
	return &profile.UserProfile{
		Name:               "Asha",
		Region:             "West India",
		PrimaryGoal:        profile.GoalDiabetes,
		DietaryStrictness:  profile.DietVegetarian,
		LifestyleType:      profile.LifestyleElderly,
		WeightKG:           62,
		PreferredMealTimes: []string{"early breakfast", "light dinner"},
	}
}

func testTargets() *biometrics.Targets {
	return &biometrics.Targets{CaloricIntake: 1800, ProteinTargetGrams: 62}
}

func testDish() dish.Dish {
	return dish.Dish{
		Name:         "Upma",
		Calories:     480,
		ProteinGrams: 11,
		Tags:         []string{"vegetarian", "fiber-rich"},
		MealSlot:     dish.SlotBreakfast,
		CulturalNote: "A south Indian semolina staple.",
	}
}

func TestExplainDish(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		gen := &mockTextGenerator{
			response: llm.ContentResponse{
				Content: "Upma keeps blood sugar steady with its fiber.",
				Usage:   shared.TokenUsage{PromptTokens: 120, CompletionTokens: 24, TotalTokens: 144, Model: "test-model"},
			},
		}
		e := New(gen, time.Second, &logger)

		text, meta := e.ExplainDish(context.Background(), testProfile(), testTargets(), "breakfast", 500, testDish())
		if text != "Upma keeps blood sugar steady with its fiber." {
			t.Errorf("Unexpected explanation: %q", text)
		}
		if meta.Fallback {
			t.Error("Successful generation should not be marked fallback")
		}
		if meta.Usage.TotalTokens != 144 {
			t.Errorf("Expected usage propagated, got %+v", meta.Usage)
		}
		if gen.calls != 1 {
			t.Errorf("Expected 1 call, got %d", gen.calls)
		}
	})

	t.Run("FailureFallsBack", func(t *testing.T) {
		gen := &mockTextGenerator{err: errors.New("model unavailable")}
		e := New(gen, time.Second, &logger)

		text, meta := e.ExplainDish(context.Background(), testProfile(), testTargets(), "breakfast", 500, testDish())
		if !meta.Fallback {
			t.Error("Failed generation must be marked fallback")
		}
		if gen.calls != 2 {
			t.Errorf("Expected one retry (2 calls), got %d", gen.calls)
		}
		if !strings.Contains(text, "Upma") {
			t.Errorf("Fallback should name the dish, got %q", text)
		}
		if !strings.Contains(text, "semolina") {
			t.Errorf("Fallback should prefer the cultural note, got %q", text)
		}
	})

	t.Run("NilGeneratorAlwaysFallback", func(t *testing.T) {
		e := New(nil, time.Second, &logger)
		d := testDish()
		d.CulturalNote = ""

		text, meta := e.ExplainDish(context.Background(), testProfile(), testTargets(), "snack_1", 180, d)
		if !meta.Fallback {
			t.Error("Nil generator must produce fallback explanations")
		}
		if !strings.Contains(text, "snack 1") {
			t.Errorf("Fallback should label the slot, got %q", text)
		}
	})

	t.Run("CanceledContextStopsRetry", func(t *testing.T) {
		gen := &mockTextGenerator{err: errors.New("model unavailable")}
		e := New(gen, time.Second, &logger)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, meta := e.ExplainDish(ctx, testProfile(), testTargets(), "dinner", 500, testDish())
		if !meta.Fallback {
			t.Error("Canceled context must produce fallback")
		}
		if gen.calls != 1 {
			t.Errorf("Expected no retry on canceled context, got %d calls", gen.calls)
		}
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := buildPrompt(testProfile(), testTargets(), "snack_2", 180, testDish())
	if err != nil {
		t.Fatalf("buildPrompt failed: %v", err)
	}
	for _, want := range []string{"Upma", "West India", "snack 2", "480", "fiber-rich", "early breakfast, light dinner"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestBuildPromptOmitsUnsetMealTimes(t *testing.T) {
	p := testProfile()
	p.PreferredMealTimes = nil

	prompt, err := buildPrompt(p, testTargets(), "lunch", 600, testDish())
	if err != nil {
		t.Fatalf("buildPrompt failed: %v", err)
	}
	if strings.Contains(prompt, "Preferred meal times") {
		t.Errorf("Prompt should omit the meal-times line when none are set:\n%s", prompt)
	}
}
