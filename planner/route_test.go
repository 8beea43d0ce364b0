package planner

import (
	"testing"

	"wayfare/models"

	"github.com/stretchr/testify/require"
)

func TestRouteClusterNearestNeighbor(t *testing.T) {
	p := testPlanner()

	// Stops on a line of longitude; input order deliberately zig-zags.
	cluster := []models.Activity{
		activityAt("start", 48.85, 2.00),
		activityAt("far", 48.85, 2.30),
		activityAt("near", 48.85, 2.10),
		activityAt("mid", 48.85, 2.20),
	}

	ordered := p.routeCluster(cluster)
	ids := make([]string, len(ordered))
	for i, a := range ordered {
		ids[i] = a.ActivityID
	}
	require.Equal(t, []string{"start", "near", "mid", "far"}, ids)
}

func TestRouteClusterSmallInputs(t *testing.T) {
	p := testPlanner()

	require.Empty(t, p.routeCluster(nil))

	one := []models.Activity{activityAt("a", 1, 1)}
	require.Equal(t, one, p.routeCluster(one))
}

func TestMatchLodgingPicksClosestToCentroid(t *testing.T) {
	p := testPlanner()

	cluster := []models.Activity{
		activityAt("a", 48.84, 2.30),
		activityAt("b", 48.86, 2.40),
	}
	lodgings := []models.Activity{
		lodgingAt("far", 48.20, 16.37, 0),
		lodgingAt("close", 48.85, 2.36, 0),
	}

	best, dist := p.matchLodging(cluster, lodgings)
	require.NotNil(t, best)
	require.Equal(t, "close", best.ActivityID)
	require.Less(t, dist, 5.0)
}

func TestMatchLodgingEmptyPool(t *testing.T) {
	p := testPlanner()

	cluster := []models.Activity{activityAt("a", 48.85, 2.35)}
	best, _ := p.matchLodging(cluster, nil)
	require.Nil(t, best)
}

func TestMatchLodgingSkipsUngeocoded(t *testing.T) {
	p := testPlanner()

	cluster := []models.Activity{activityAt("a", 48.85, 2.35)}
	blind := models.Activity{ActivityID: "blind", Category: models.CategoryLodging}

	best, _ := p.matchLodging(cluster, []models.Activity{blind})
	require.Nil(t, best)
}
