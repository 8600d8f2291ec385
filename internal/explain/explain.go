package explain

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"meal-recommender/internal/biometrics"
	"meal-recommender/internal/dish"
	"meal-recommender/internal/llm"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/shared"
)

//go:embed explain_prompt.md
var explainPrompt string

// DefaultTimeout bounds one generation call. The explanation is best-effort:
// the numeric plan never waits longer than timeout × attempts for it.
const DefaultTimeout = 15 * time.Second

type promptData struct {
	MealLabel         string
	Region            string
	Goal              string
	Dietary           string
	Lifestyle         string
	MealTimes         string
	WeightKG          float64
	DailyProteinNeed  int
	CalorieBudget     int
	MealProteinTarget int
	DishName          string
	DishCalories      int
	DishProtein       int
	DishTags          string
	CulturalNote      string
}

// Explainer produces short per-dish justifications. Generation failures and
// timeouts fall back to a templated description; they never fail the request.
type Explainer struct {
	textGen llm.TextGenerator
	timeout time.Duration
	log     *zerolog.Logger
}

// New creates an Explainer. textGen may be nil, in which case every
// explanation uses the templated fallback.
func New(textGen llm.TextGenerator, timeout time.Duration, log *zerolog.Logger) *Explainer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Explainer{textGen: textGen, timeout: timeout, log: log}
}

// ExplainDish returns a short justification for one selected dish. One retry
// is attempted on failure; after that the templated fallback is used.
func (e *Explainer) ExplainDish(ctx context.Context, p *profile.UserProfile, targets *biometrics.Targets, slot string, calorieBudget int, d dish.Dish) (string, shared.GenerationMeta) {
	start := time.Now()
	meta := shared.GenerationMeta{Slot: slot}

	if e.textGen == nil {
		meta.Fallback = true
		meta.Latency = time.Since(start)
		return fallbackDescription(slot, d), meta
	}

	prompt, err := buildPrompt(p, targets, slot, calorieBudget, d)
	if err != nil {
		e.log.Warn().Err(err).Str("slot", slot).Msg("failed to build explanation prompt")
		meta.Fallback = true
		meta.Latency = time.Since(start)
		return fallbackDescription(slot, d), meta
	}

	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		resp, err := e.textGen.GenerateContent(callCtx, prompt)
		cancel()

		if err == nil && strings.TrimSpace(resp.Content) != "" {
			meta.Usage = resp.Usage
			meta.Latency = time.Since(start)
			return strings.TrimSpace(resp.Content), meta
		}

		e.log.Warn().Err(err).Str("slot", slot).Int("attempt", attempt+1).Msg("explanation generation failed")
		if ctx.Err() != nil {
			break
		}
	}

	meta.Fallback = true
	meta.Latency = time.Since(start)
	return fallbackDescription(slot, d), meta
}

func buildPrompt(p *profile.UserProfile, targets *biometrics.Targets, slot string, calorieBudget int, d dish.Dish) (string, error) {
	tmpl, err := template.New("explain").Parse(explainPrompt)
	if err != nil {
		return "", err
	}

	mealProtein := biometrics.MealProteinTarget(targets.ProteinTargetGrams, baseSlot(slot))

	data := promptData{
		MealLabel:         strings.ReplaceAll(slot, "_", " "),
		Region:            p.Region,
		Goal:              string(p.PrimaryGoal),
		Dietary:           string(p.DietaryStrictness),
		Lifestyle:         string(p.LifestyleType),
		MealTimes:         strings.Join(p.PreferredMealTimes, ", "),
		WeightKG:          p.WeightKG,
		DailyProteinNeed:  targets.ProteinTargetGrams,
		CalorieBudget:     calorieBudget,
		MealProteinTarget: int(mealProtein),
		DishName:          d.Name,
		DishCalories:      d.Calories,
		DishProtein:       d.ProteinGrams,
		DishTags:          strings.Join(d.Tags, ", "),
		CulturalNote:      d.CulturalNote,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fallbackDescription builds a templated explanation when generation is
// unavailable, preferring the dish's own cultural note.
func fallbackDescription(slot string, d dish.Dish) string {
	if d.CulturalNote != "" {
		return fmt.Sprintf("%s (%d kcal, %dg protein). %s", d.Name, d.Calories, d.ProteinGrams, d.CulturalNote)
	}
	return fmt.Sprintf("Recommended %s: %s with %d kcal and %dg protein.",
		strings.ReplaceAll(slot, "_", " "), d.Name, d.Calories, d.ProteinGrams)
}

// baseSlot strips the snack counter suffix so snack_1 and snack_2 share the
// per-snack protein share.
func baseSlot(slot string) string {
	if strings.HasPrefix(slot, "snack") {
		return "snack"
	}
	return slot
}
