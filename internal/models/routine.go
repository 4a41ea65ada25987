package models

import "fmt"

// RoutineItem identifies one task of the fixed morning routine. The value is a
// stable identifier used in persisted records; display text lives in the label
// table so copy changes never touch stored data.
type RoutineItem string

const (
	ItemPushups        RoutineItem = "pushups"
	ItemMakeBed        RoutineItem = "make_bed"
	ItemSkincare       RoutineItem = "skincare"
	ItemHydrate        RoutineItem = "hydrate"
	ItemReviewCalendar RoutineItem = "review_calendar"
)

var routineItems = []RoutineItem{
	ItemPushups,
	ItemMakeBed,
	ItemSkincare,
	ItemHydrate,
	ItemReviewCalendar,
}

var routineLabels = map[RoutineItem]string{
	ItemPushups:        "Push-ups",
	ItemMakeBed:        "Make the bed",
	ItemSkincare:       "Skincare",
	ItemHydrate:        "Drink a glass of water",
	ItemReviewCalendar: "Review today's calendar",
}

// AllRoutineItems returns the closed set of routine items in display order.
func AllRoutineItems() []RoutineItem {
	items := make([]RoutineItem, len(routineItems))
	copy(items, routineItems)
	return items
}

// RoutineItemCount is the size of the fixed item set.
func RoutineItemCount() int {
	return len(routineItems)
}

// Label returns the human-readable name for an item.
func (i RoutineItem) Label() string {
	if label, ok := routineLabels[i]; ok {
		return label
	}
	return string(i)
}

// Valid reports whether i is a member of the fixed item set.
func (i RoutineItem) Valid() bool {
	_, ok := routineLabels[i]
	return ok
}

// ParseRoutineItem converts a stored or user-supplied identifier into a
// RoutineItem, rejecting anything outside the fixed set.
func ParseRoutineItem(s string) (RoutineItem, error) {
	item := RoutineItem(s)
	if !item.Valid() {
		return "", fmt.Errorf("unknown routine item: %q", s)
	}
	return item, nil
}
