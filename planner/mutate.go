package planner

import (
	"context"
	"fmt"
	"sort"

	"wayfare/models"
)

// ActivitySource fetches canonical activity records for mutations that
// may pull activities in from outside the itinerary. The suggestions
// store implements it; keeping it an interface here is what breaks the
// suggestions↔itinerary dependency cycle.
type ActivitySource interface {
	FetchActivity(ctx context.Context, activityID string) (*models.Activity, error)
}

// OrderedActivity and DayOrder are the reorder-all-days payload shape.
type OrderedActivity struct {
	ActivityID string `json:"activityid"`
	OrderInDay int    `json:"order_in_day"`
}

type DayOrder struct {
	DayNumber  int               `json:"day_number"`
	Activities []OrderedActivity `json:"activities"`
}

// ReorderDay rebuilds one day from a full ordered id list. Each named
// activity is pulled from wherever it currently lives; ids that exist
// nowhere are skipped with a warning. Entries already on the target day
// but not named keep their place after the named ones, so nothing is
// silently lost. Every day is renumbered densely afterwards.
func (p *Planner) ReorderDay(it *models.Itinerary, dayNumber int, order []string) error {
	if dayNumber < 1 || dayNumber > len(it.Days) {
		return fmt.Errorf("%w: day %d out of range [1,%d]", ErrInvalidRequest, dayNumber, len(it.Days))
	}

	collected := make([]models.DayActivity, 0, len(order))
	for _, id := range order {
		entry, ok := removeActivity(it, id)
		if !ok {
			p.Log.Printf("[MUTATE] itinerary %s: activity %s not found anywhere, skipping", it.ItineraryID, id)
			continue
		}
		collected = append(collected, entry)
	}

	target := &it.Days[dayNumber-1]
	target.Activities = append(collected, target.Activities...)

	renumber(it)
	it.TotalCost = TotalCost(it.Days)
	return nil
}

// ReorderAllDays replaces the activity list of every referenced day.
// Ids are resolved against the itinerary's current structure first and
// fetched from the activity source when absent, so entries can be pulled
// in from outside. Days outside [1,totalDays] and unresolvable or
// duplicated ids are skipped with a warning.
func (p *Planner) ReorderAllDays(ctx context.Context, it *models.Itinerary, days []DayOrder, src ActivitySource) error {
	used := make(map[string]bool)
	var usedOrder []string
	newLists := make(map[int][]models.DayActivity)

	for _, d := range days {
		if d.DayNumber < 1 || d.DayNumber > len(it.Days) {
			p.Log.Printf("[MUTATE] itinerary %s: day %d out of range, skipping", it.ItineraryID, d.DayNumber)
			continue
		}

		entries := make([]OrderedActivity, len(d.Activities))
		copy(entries, d.Activities)
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].OrderInDay < entries[j].OrderInDay
		})

		list := make([]models.DayActivity, 0, len(entries))
		for _, oa := range entries {
			if used[oa.ActivityID] {
				p.Log.Printf("[MUTATE] itinerary %s: activity %s referenced twice, keeping the first placement", it.ItineraryID, oa.ActivityID)
				continue
			}
			if entry, ok := findActivity(it, oa.ActivityID); ok {
				list = append(list, entry)
				used[oa.ActivityID] = true
				usedOrder = append(usedOrder, oa.ActivityID)
				continue
			}
			act, err := src.FetchActivity(ctx, oa.ActivityID)
			if err != nil {
				p.Log.Printf("[MUTATE] itinerary %s: activity %s not found in source (%v), skipping", it.ItineraryID, oa.ActivityID, err)
				continue
			}
			list = append(list, models.DayActivity{
				ActivityID: act.ActivityID,
				Activity:   act.Snapshot(),
			})
			used[oa.ActivityID] = true
			usedOrder = append(usedOrder, oa.ActivityID)
		}
		newLists[d.DayNumber] = list
	}

	// Detach every claimed entry from its old day, then install the
	// replacement lists.
	for _, id := range usedOrder {
		removeActivity(it, id)
	}
	for dayNumber, list := range newLists {
		it.Days[dayNumber-1].Activities = list
	}

	renumber(it)
	it.TotalCost = TotalCost(it.Days)
	return nil
}

// UpdateDayLodging sets or clears a day's lodging. A day outside the
// valid range is a hard error, as is a non-lodging activity id.
func (p *Planner) UpdateDayLodging(ctx context.Context, it *models.Itinerary, dayNumber int, activityID *string, src ActivitySource) error {
	if dayNumber < 1 || dayNumber > len(it.Days) {
		return fmt.Errorf("%w: day %d out of range [1,%d]", ErrInvalidRequest, dayNumber, len(it.Days))
	}
	day := &it.Days[dayNumber-1]

	if activityID == nil || *activityID == "" {
		day.Lodging = nil
	} else {
		act, err := src.FetchActivity(ctx, *activityID)
		if err != nil {
			return fmt.Errorf("%w: lodging activity %s", ErrNotFound, *activityID)
		}
		if act.Category != models.CategoryLodging {
			return fmt.Errorf("%w: activity %s is not a lodging", ErrInvalidRequest, *activityID)
		}
		snap := act.Snapshot()
		day.Lodging = &snap
	}

	it.TotalCost = TotalCost(it.Days)
	return nil
}

// AddActivity appends an activity to a day. An activity already
// scheduled anywhere in the itinerary is a conflict; the itinerary is
// left untouched in that case.
func (p *Planner) AddActivity(ctx context.Context, it *models.Itinerary, dayNumber int, activityID string, src ActivitySource) error {
	if dayNumber < 1 || dayNumber > len(it.Days) {
		return fmt.Errorf("%w: day %d out of range [1,%d]", ErrInvalidRequest, dayNumber, len(it.Days))
	}
	if it.HasActivity(activityID) {
		return fmt.Errorf("%w: activity %s is already scheduled", ErrConflict, activityID)
	}

	act, err := src.FetchActivity(ctx, activityID)
	if err != nil {
		return fmt.Errorf("%w: activity %s", ErrNotFound, activityID)
	}

	day := &it.Days[dayNumber-1]
	day.Activities = append(day.Activities, models.DayActivity{
		ActivityID: act.ActivityID,
		OrderInDay: len(day.Activities) + 1,
		Activity:   act.Snapshot(),
	})

	it.TotalCost = TotalCost(it.Days)
	return nil
}

// ResyncSnapshots replaces every stale snapshot of the activity held by
// the itinerary (entries and lodging) and recomputes the cost. Reports
// whether anything changed so callers can skip redundant writes.
func (p *Planner) ResyncSnapshots(it *models.Itinerary, act *models.Activity) bool {
	snap := act.Snapshot()
	changed := false
	for i := range it.Days {
		day := &it.Days[i]
		for j := range day.Activities {
			if day.Activities[j].ActivityID != act.ActivityID {
				continue
			}
			if !snapshotsEqual(day.Activities[j].Activity, snap) {
				day.Activities[j].Activity = snap
				changed = true
			}
		}
		if day.Lodging != nil && day.Lodging.ActivityID == act.ActivityID && !snapshotsEqual(*day.Lodging, snap) {
			s := snap
			day.Lodging = &s
			changed = true
		}
	}
	if changed {
		it.TotalCost = TotalCost(it.Days)
	}
	return changed
}

// removeActivity detaches the entry with the given id from whichever day
// holds it.
func removeActivity(it *models.Itinerary, activityID string) (models.DayActivity, bool) {
	for i := range it.Days {
		acts := it.Days[i].Activities
		for j := range acts {
			if acts[j].ActivityID == activityID {
				entry := acts[j]
				it.Days[i].Activities = append(acts[:j], acts[j+1:]...)
				return entry, true
			}
		}
	}
	return models.DayActivity{}, false
}

func findActivity(it *models.Itinerary, activityID string) (models.DayActivity, bool) {
	for i := range it.Days {
		for j := range it.Days[i].Activities {
			if it.Days[i].Activities[j].ActivityID == activityID {
				return it.Days[i].Activities[j], true
			}
		}
	}
	return models.DayActivity{}, false
}

// renumber restores both structural invariants: contiguous 1-based day
// numbers and dense 1..k orderInDay values within each day.
func renumber(it *models.Itinerary) {
	for i := range it.Days {
		it.Days[i].DayNumber = i + 1
		for j := range it.Days[i].Activities {
			it.Days[i].Activities[j].OrderInDay = j + 1
		}
	}
}

func snapshotsEqual(a, b models.ActivitySnapshot) bool {
	return a.ActivityID == b.ActivityID &&
		a.Name == b.Name &&
		a.Category == b.Category &&
		a.DurationHours == b.DurationHours &&
		a.Price == b.Price &&
		floatPtrEqual(a.Latitude, b.Latitude) &&
		floatPtrEqual(a.Longitude, b.Longitude)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
