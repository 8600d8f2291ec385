package selector

import (
	"meal-recommender/internal/biometrics"
	"meal-recommender/internal/dish"
	"meal-recommender/internal/profile"
)

// DefaultTopK is how many candidate dishes each slot offers. The prompt
// surface shows two options per meal; larger corpora can raise this.
const DefaultTopK = 2

// SlotCandidates holds the ranked picks for one meal slot. Empty reports a
// slot whose corpus was emptied by the hard filter; the rest of the plan is
// unaffected.
type SlotCandidates struct {
	Slot     dish.MealSlot
	Dishes   []ScoredDish
	Empty    bool
	EmptyMsg string
}

// Selector runs the filter-score-select pipeline against an immutable corpus.
type Selector struct {
	corpus *dish.Corpus
	topK   int
}

// New creates a Selector. A topK of zero or less falls back to DefaultTopK.
func New(corpus *dish.Corpus, topK int) *Selector {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Selector{corpus: corpus, topK: topK}
}

// TopK returns the configured candidate count per slot.
func (s *Selector) TopK() int {
	return s.topK
}

// CandidatesForSlot filters, scores and selects the top-K unique dishes for
// one meal slot. Fewer than K candidates is not an error; duplicates are
// never returned.
func (s *Selector) CandidatesForSlot(slot dish.MealSlot, p *profile.UserProfile, targets *biometrics.Targets) SlotCandidates {
	return s.ranked(slot, p, targets, s.topK)
}

// SnackPool returns one ranked snack pool deep enough to fill the given
// number of snack slots with up to top-K candidates each without repeating
// a dish. Slot i draws its window starting at position i.
func (s *Selector) SnackPool(p *profile.UserProfile, targets *biometrics.Targets, snackSlots int) SlotCandidates {
	if snackSlots < 1 {
		snackSlots = 1
	}
	return s.ranked(dish.SlotSnack, p, targets, s.topK+snackSlots-1)
}

func (s *Selector) ranked(slot dish.MealSlot, p *profile.UserProfile, targets *biometrics.Targets, limit int) SlotCandidates {
	pool := s.corpus.BySlot(slot)

	filtered, err := FilterByConstraints(pool, p)
	if err != nil {
		return SlotCandidates{Slot: slot, Empty: true, EmptyMsg: err.Error()}
	}

	proteinTarget := biometrics.MealProteinTarget(targets.ProteinTargetGrams, string(slot))
	scored := ScoreDishes(filtered, p, proteinTarget)

	return SlotCandidates{Slot: slot, Dishes: takeUnique(scored, limit)}
}

func takeUnique(scored []ScoredDish, k int) []ScoredDish {
	seen := make(map[string]struct{}, k)
	out := make([]ScoredDish, 0, k)
	for _, sd := range scored {
		if _, dup := seen[sd.Dish.Name]; dup {
			continue
		}
		seen[sd.Dish.Name] = struct{}{}
		out = append(out, sd)
		if len(out) == k {
			break
		}
	}
	return out
}
