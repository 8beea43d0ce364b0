package planner

import "wayfare/models"

// routeCluster orders a cluster with the nearest-neighbor heuristic:
// start from the first activity in input order, repeatedly hop to the
// closest unvisited one. O(n²), fine because clusters are bounded by
// days×maxPerDay.
func (p *Planner) routeCluster(cluster []models.Activity) []models.Activity {
	if len(cluster) < 2 {
		return cluster
	}

	remaining := make([]models.Activity, len(cluster))
	copy(remaining, cluster)

	ordered := make([]models.Activity, 0, len(cluster))
	current := remaining[0]
	ordered = append(ordered, current)
	remaining = remaining[1:]

	for len(remaining) > 0 {
		best := 0
		bestDist := Haversine(*current.Latitude, *current.Longitude,
			*remaining[0].Latitude, *remaining[0].Longitude)
		for i := 1; i < len(remaining); i++ {
			d := Haversine(*current.Latitude, *current.Longitude,
				*remaining[i].Latitude, *remaining[i].Longitude)
			if d < bestDist {
				best = i
				bestDist = d
			}
		}
		current = remaining[best]
		ordered = append(ordered, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}

// matchLodging picks the geocoded lodging activity closest to the
// cluster's centroid and the distance to it. No cutoff is applied here;
// the packer decides whether a far match is still worth assigning.
func (p *Planner) matchLodging(cluster, lodgings []models.Activity) (*models.Activity, float64) {
	points := make([]Point, 0, len(cluster))
	for _, a := range cluster {
		if a.HasCoords() {
			points = append(points, Point{Lat: *a.Latitude, Lon: *a.Longitude})
		}
	}
	if len(points) == 0 {
		return nil, 0
	}
	center := Centroid(points)

	var best *models.Activity
	bestDist := 0.0
	for i := range lodgings {
		l := &lodgings[i]
		if !l.HasCoords() {
			continue
		}
		d := Haversine(center.Lat, center.Lon, *l.Latitude, *l.Longitude)
		if best == nil || d < bestDist {
			best = l
			bestDist = d
		}
	}
	return best, bestDist
}
