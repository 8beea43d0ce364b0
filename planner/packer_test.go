package planner

import (
	"testing"

	"wayfare/models"

	"github.com/stretchr/testify/require"
)

func TestPackDaysSplitsClusterAtBudget(t *testing.T) {
	p := testPlanner()

	// Five 2 h stops at the same spot (zero travel), 2 days, 8 h
	// budget: day 1 takes four (100% load), day 2 takes the fifth.
	cluster := make([]models.Activity, 5)
	for i := range cluster {
		cluster[i] = activityAt(string(rune('a'+i)), 48.8566, 2.3522)
	}

	days := p.packDays([][]models.Activity{cluster}, nil, 2)
	require.Len(t, days, 2)
	require.Len(t, days[0].Activities, 4)
	require.Len(t, days[1].Activities, 1)
	require.InDelta(t, 100, days[0].Load, 0.01)
}

func TestPackDaysChargesTravelTime(t *testing.T) {
	p := testPlanner()

	// Two 2 h stops 8 km apart cost 2+2 visit hours plus 2 walking
	// hours at 4 km/h between them.
	cluster := []models.Activity{
		activityAt("a", 48.8566, 2.3522),
		activityAt("b", 48.9285, 2.3522), // ~8 km north
	}

	days := p.packDays([][]models.Activity{cluster}, nil, 1)
	require.Len(t, days[0].Activities, 2)
	require.InDelta(t, 75, days[0].Load, 2) // 6h of 8h
}

func TestPackDaysNewClusterOpensFreshDay(t *testing.T) {
	p := testPlanner()

	clusterA := []models.Activity{activityAt("a", 48.85, 2.35)}
	clusterB := []models.Activity{activityAt("b", 41.90, 12.50)}

	days := p.packDays([][]models.Activity{clusterA, clusterB}, nil, 3)
	require.Len(t, days[0].Activities, 1)
	require.Equal(t, "a", days[0].Activities[0].ActivityID)
	require.Len(t, days[1].Activities, 1)
	require.Equal(t, "b", days[1].Activities[0].ActivityID)
	require.Empty(t, days[2].Activities)
}

func TestPackDaysLastDayOverloads(t *testing.T) {
	p := testPlanner()

	// 6 stops of 2 h on a single day: 12 h accumulate on day 1, load
	// past 100%, never a spill into a day that doesn't exist.
	cluster := make([]models.Activity, 6)
	for i := range cluster {
		cluster[i] = activityAt(string(rune('a'+i)), 48.8566, 2.3522)
	}

	days := p.packDays([][]models.Activity{cluster}, nil, 1)
	require.Len(t, days, 1)
	require.Len(t, days[0].Activities, 6)
	require.Greater(t, days[0].Load, 100.0)
}

func TestPackDaysBackfillsLodging(t *testing.T) {
	p := testPlanner()

	cluster := make([]models.Activity, 5)
	for i := range cluster {
		cluster[i] = activityAt(string(rune('a'+i)), 48.8566, 2.3522)
	}
	hotel := lodgingAt("h", 48.8566, 2.3522, models.ParseMoney(120))

	days := p.packDays([][]models.Activity{cluster}, []models.Activity{hotel}, 2)
	require.NotNil(t, days[0].Lodging)
	require.NotNil(t, days[1].Lodging, "lodging must cover every day the cluster spans")
	require.Equal(t, "h", days[0].Lodging.ActivityID)
	require.Equal(t, "h", days[1].Lodging.ActivityID)
}

func TestPackDaysLodgingCutoff(t *testing.T) {
	p := testPlanner()

	cluster := []models.Activity{activityAt("a", 48.8566, 2.3522)}
	// Closest lodging sits ~80 km away, beyond the 30 km cutoff.
	hotel := lodgingAt("h", 49.5, 2.3522, 0)

	days := p.packDays([][]models.Activity{cluster}, []models.Activity{hotel}, 1)
	require.Nil(t, days[0].Lodging)

	// Disabling the cutoff keeps the match.
	p.Opts.LodgingCutoffKm = 0
	days = p.packDays([][]models.Activity{cluster}, []models.Activity{hotel}, 1)
	require.NotNil(t, days[0].Lodging)
}

func TestPackDaysLodgingOnly(t *testing.T) {
	p := testPlanner()

	hotels := []models.Activity{
		lodgingAt("h1", 48.85, 2.35, 0),
		lodgingAt("h2", 41.90, 12.50, 0),
	}

	days := p.packDays(nil, hotels, 3)
	require.Len(t, days, 3)
	require.Equal(t, "h1", days[0].Lodging.ActivityID)
	require.Equal(t, "h2", days[1].Lodging.ActivityID)
	require.Nil(t, days[2].Lodging)
	for _, d := range days {
		require.Empty(t, d.Activities)
	}
}

func TestPackDaysDefaultDuration(t *testing.T) {
	p := testPlanner()

	a := activityAt("a", 48.8566, 2.3522)
	a.DurationHours = 0 // missing duration falls back to 2 h

	days := p.packDays([][]models.Activity{{a}}, nil, 1)
	require.InDelta(t, 25, days[0].Load, 0.1)
}
