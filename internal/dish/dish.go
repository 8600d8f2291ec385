package dish

// MealSlot identifies which part of the day a dish belongs to. The corpus is
// partitioned by slot, so cross-slot duplicate suppression is never needed.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// Slots lists all meal slots in serving order.
var Slots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// Dish is one immutable corpus entry, loaded at process start and shared
// read-only across requests.
type Dish struct {
	Name         string   `json:"name"`
	Calories     int      `json:"calories"`
	ProteinGrams int      `json:"protein_grams"`
	Tags         []string `json:"tags"`
	MealSlot     MealSlot `json:"meal_slot"`
	Region       string   `json:"region"`
	CulturalNote string   `json:"cultural_note,omitempty"`
}

// HasTag reports whether the dish carries the given tag.
func (d Dish) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the dish carries at least one of the given tags.
func (d Dish) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if d.HasTag(t) {
			return true
		}
	}
	return false
}
