package planner

import "wayfare/models"

// clusterByLocation partitions geocoded activities into groups whose
// members are all within ClusterThresholdKm of the group's first member.
// Greedy and order-dependent on purpose: O(n·clusters), deterministic,
// and two cities 800 km apart can never end up merged no matter how many
// points sit between them. Not k-means, not hierarchical.
func (p *Planner) clusterByLocation(activities []models.Activity) [][]models.Activity {
	var clusters [][]models.Activity
	for _, a := range activities {
		placed := false
		for i := range clusters {
			rep := clusters[i][0]
			d := Haversine(*a.Latitude, *a.Longitude, *rep.Latitude, *rep.Longitude)
			if d < p.Opts.ClusterThresholdKm {
				clusters[i] = append(clusters[i], a)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []models.Activity{a})
		}
	}
	return clusters
}
