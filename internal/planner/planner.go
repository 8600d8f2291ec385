package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"meal-recommender/internal/biometrics"
	"meal-recommender/internal/dish"
	"meal-recommender/internal/explain"
	"meal-recommender/internal/nutrition"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/selector"
	"meal-recommender/internal/shared"
)

// Candidate is one ranked dish offered for a meal slot.
type Candidate struct {
	DishName     string  `json:"dish_name"`
	Calories     int     `json:"calories"`
	ProteinGrams int     `json:"protein_grams"`
	Score        float64 `json:"score"`
}

// SlotResult is the outcome for one meal slot: the ranked candidates, the
// final pick, and its explanation. An empty slot carries a note and does not
// abort the rest of the plan.
type SlotResult struct {
	Slot          string      `json:"slot"`
	CalorieBudget int         `json:"calorie_budget"`
	Candidates    []Candidate `json:"candidates,omitempty"`
	Selected      *Candidate  `json:"selected,omitempty"`
	Explanation   string      `json:"explanation,omitempty"`
	Empty         bool        `json:"empty,omitempty"`
	Note          string      `json:"note,omitempty"`
}

// PlanResult is the complete output of one planning request.
type PlanResult struct {
	Profile      *profile.UserProfile `json:"user_data"`
	Targets      *biometrics.Targets  `json:"calculated_data"`
	Slots        []SlotResult         `json:"meal_plan"`
	MealCalories map[string]int       `json:"meal_calories"`
	MealProteins map[string]int       `json:"meal_proteins"`
	Summary      nutrition.Summary    `json:"nutritional_summary"`
	GeneratedAt  time.Time            `json:"timestamp"`
}

// Planner runs the full pipeline: targets, per-slot selection, best-effort
// explanations, and the adequacy summary.
type Planner struct {
	selector  *selector.Selector
	explainer *explain.Explainer
	log       *zerolog.Logger
}

// New creates a Planner.
func New(sel *selector.Selector, exp *explain.Explainer, log *zerolog.Logger) *Planner {
	return &Planner{selector: sel, explainer: exp, log: log}
}

// GeneratePlan produces a full day's plan for one profile. The numeric plan
// and summary are always complete even when explanation generation fails.
func (p *Planner) GeneratePlan(ctx context.Context, up *profile.UserProfile) (*PlanResult, []shared.GenerationMeta, error) {
	if err := up.Validate(); err != nil {
		return nil, nil, err
	}

	targets, err := biometrics.ComputeTargets(up)
	if err != nil {
		return nil, nil, err
	}

	budgets, err := biometrics.SplitCalories(targets.CaloricIntake, up.Frequency())
	if err != nil {
		return nil, nil, err
	}

	p.log.Info().
		Int("caloric_intake", targets.CaloricIntake).
		Int("protein_target", targets.ProteinTargetGrams).
		Interface("calorie_split", budgets).
		Msg("computed targets")

	result := &PlanResult{
		Profile:      up,
		Targets:      targets,
		MealCalories: make(map[string]int),
		MealProteins: make(map[string]int),
		GeneratedAt:  time.Now().UTC(),
	}

	var metas []shared.GenerationMeta

	order := slotOrder(budgets)
	snackSlots := 0
	for _, slot := range order {
		if strings.HasPrefix(slot, "snack") {
			snackSlots++
		}
	}

	// Snack slots share one ranked candidate pool so the snacks are always
	// distinct dishes. The pool is fetched deep enough that a later snack
	// slot still has candidates even with a small top-K.
	var snackPool selector.SlotCandidates
	snackPoolLoaded := false
	snackIndex := 0

	for _, slot := range order {
		budget := budgets[slot]
		var sr SlotResult
		var selected dish.Dish

		if strings.HasPrefix(slot, "snack") {
			if !snackPoolLoaded {
				snackPool = p.selector.SnackPool(up, targets, snackSlots)
				snackPoolLoaded = true
			}
			sr, selected = fillSnackSlot(slot, budget, snackPool, snackIndex, p.selector.TopK())
			snackIndex++
		} else {
			candidates := p.selector.CandidatesForSlot(dish.MealSlot(slot), up, targets)
			sr, selected = fillMealSlot(slot, budget, candidates)
		}

		if !sr.Empty && sr.Selected != nil {
			explanation, meta := p.explainer.ExplainDish(ctx, up, targets, slot, budget, selected)
			sr.Explanation = explanation
			metas = append(metas, meta)

			result.MealCalories[slot] = sr.Selected.Calories
			result.MealProteins[slot] = sr.Selected.ProteinGrams
		} else {
			p.log.Warn().Str("slot", slot).Str("note", sr.Note).Msg("meal slot is empty")
			result.MealCalories[slot] = 0
			result.MealProteins[slot] = 0
		}

		result.Slots = append(result.Slots, sr)
	}

	result.Summary = nutrition.Summarize(up, targets, result.MealCalories, result.MealProteins)
	return result, metas, nil
}

func fillMealSlot(slot string, budget int, sc selector.SlotCandidates) (SlotResult, dish.Dish) {
	sr := SlotResult{Slot: slot, CalorieBudget: budget}
	if sc.Empty || len(sc.Dishes) == 0 {
		sr.Empty = true
		sr.Note = emptyNote(slot, sc)
		return sr, dish.Dish{}
	}

	sr.Candidates = toCandidates(sc.Dishes)
	sr.Selected = &sr.Candidates[0]
	return sr, sc.Dishes[0].Dish
}

// fillSnackSlot assigns the idx-th snack from the shared ranked pool,
// offering up to topK candidates from that position onward.
func fillSnackSlot(slot string, budget int, pool selector.SlotCandidates, idx, topK int) (SlotResult, dish.Dish) {
	sr := SlotResult{Slot: slot, CalorieBudget: budget}
	if pool.Empty || len(pool.Dishes) <= idx {
		sr.Empty = true
		sr.Note = emptyNote(slot, pool)
		if !pool.Empty {
			sr.Note = fmt.Sprintf("only %d unique snack dishes available", len(pool.Dishes))
		}
		return sr, dish.Dish{}
	}

	end := idx + topK
	if end > len(pool.Dishes) {
		end = len(pool.Dishes)
	}
	sr.Candidates = toCandidates(pool.Dishes[idx:end])
	sr.Selected = &sr.Candidates[0]
	return sr, pool.Dishes[idx].Dish
}

func toCandidates(scored []selector.ScoredDish) []Candidate {
	out := make([]Candidate, 0, len(scored))
	for _, sd := range scored {
		out = append(out, Candidate{
			DishName:     sd.Dish.Name,
			Calories:     sd.Dish.Calories,
			ProteinGrams: sd.Dish.ProteinGrams,
			Score:        sd.Score,
		})
	}
	return out
}

func emptyNote(slot string, sc selector.SlotCandidates) string {
	if sc.EmptyMsg != "" {
		return sc.EmptyMsg
	}
	return fmt.Sprintf("no suitable %s available", strings.ReplaceAll(slot, "_", " "))
}

// slotOrder returns the slots present in the calorie split, in serving order.
func slotOrder(budgets map[string]int) []string {
	order := []string{"breakfast", "lunch", "dinner", "snack_1", "snack_2"}
	var out []string
	for _, slot := range order {
		if _, ok := budgets[slot]; ok {
			out = append(out, slot)
		}
	}
	return out
}
