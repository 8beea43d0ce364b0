package planner

import (
	"sort"

	"wayfare/models"
)

// Priority tiers map to weights 3/2/1; anything unknown (including the
// empty string) counts as the default tier.
func priorityWeight(priority string) float64 {
	switch priority {
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	default:
		return 1
	}
}

type scoredActivity struct {
	activity models.Activity
	score    float64
}

// selectActivities ranks the votable pool and keeps the top
// totalDays×maxPerDay entries. Lodging activities are always kept, off
// to the side and uncounted; "other" logistics entries never get
// scheduled as stops. Returns ErrNoVotedActivities when nothing votable
// carries a selected vote.
func (p *Planner) selectActivities(pool []models.Activity, totalDays, maxPerDay int) ([]models.Activity, []models.Activity, error) {
	var lodgings, votable []models.Activity
	for _, a := range pool {
		switch a.Category {
		case models.CategoryLodging:
			lodgings = append(lodgings, a)
		case models.CategoryOther:
			// logistics entries, never visitable stops
		default:
			votable = append(votable, a)
		}
	}

	scored := make([]scoredActivity, 0, len(votable))
	for _, a := range votable {
		selected := 0
		weightSum := 0.0
		for _, v := range a.Votes {
			if !v.Selected {
				continue
			}
			selected++
			weightSum += priorityWeight(v.Priority)
		}
		if selected == 0 {
			continue
		}
		avgWeight := weightSum / float64(selected)
		scored = append(scored, scoredActivity{
			activity: a,
			score:    float64(selected) * avgWeight,
		})
	}

	if len(scored) == 0 {
		return nil, nil, ErrNoVotedActivities
	}

	// Stable: ties keep the input (fetch) order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := totalDays * maxPerDay
	if len(scored) > limit {
		scored = scored[:limit]
	}

	picked := make([]models.Activity, len(scored))
	for i, s := range scored {
		picked[i] = s.activity
	}
	return picked, lodgings, nil
}
