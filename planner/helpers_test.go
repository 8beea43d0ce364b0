package planner

import (
	"context"
	"fmt"
	"log"
	"testing"

	"wayfare/models"

	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func testPlanner() *Planner {
	return New(DefaultOptions(), log.New(testWriter{}, "", 0))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func activityAt(id string, lat, lon float64) models.Activity {
	return models.Activity{
		ActivityID:    id,
		Name:          "activity " + id,
		Category:      "sightseeing",
		Latitude:      fptr(lat),
		Longitude:     fptr(lon),
		DurationHours: 2,
	}
}

func lodgingAt(id string, lat, lon float64, price models.Money) models.Activity {
	return models.Activity{
		ActivityID: id,
		Name:       "hotel " + id,
		Category:   models.CategoryLodging,
		Latitude:   fptr(lat),
		Longitude:  fptr(lon),
		Price:      price,
	}
}

func votes(n int, priority string) []models.Vote {
	vs := make([]models.Vote, n)
	for i := range vs {
		vs[i] = models.Vote{UserID: fmt.Sprintf("u%d", i), Selected: true, Priority: priority}
	}
	return vs
}

// stubSource serves FetchActivity from a fixed map.
type stubSource struct {
	activities map[string]models.Activity
}

func (s *stubSource) FetchActivity(_ context.Context, id string) (*models.Activity, error) {
	if a, ok := s.activities[id]; ok {
		return &a, nil
	}
	return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
}

// requireInvariants checks the structural invariants that must hold
// after every generation run and every mutation.
func requireInvariants(t *testing.T, it *models.Itinerary) {
	t.Helper()

	require.Len(t, it.Days, it.TotalDays)
	seen := make(map[string]int)
	for i, day := range it.Days {
		require.Equal(t, i+1, day.DayNumber, "day numbers must be contiguous from 1")
		for j, entry := range day.Activities {
			require.Equal(t, j+1, entry.OrderInDay, "orderInDay must be dense within day %d", day.DayNumber)
			seen[entry.ActivityID]++
		}
		if day.Lodging != nil {
			require.Equal(t, models.CategoryLodging, day.Lodging.Category)
		}
	}
	for id, count := range seen {
		require.Equal(t, 1, count, "activity %s appears %d times", id, count)
	}
	require.Equal(t, TotalCost(it.Days), it.TotalCost, "stored total must equal recomputation")
}
