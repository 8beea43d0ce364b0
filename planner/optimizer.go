package planner

import "wayfare/models"

// optimizeDays re-sequences the packed days: first pull days sharing the
// exact same lodging together so the group changes hotels as rarely as
// possible, then order the sequence by nearest-neighbor over day
// centroids, then renumber. Single-day and empty itineraries pass
// through unchanged.
func (p *Planner) optimizeDays(days []models.Day) []models.Day {
	if len(days) < 2 {
		return days
	}

	// Pass 1: lodging grouping. Each unprocessed day drags every later
	// day with the same lodging id in right behind it.
	grouped := make([]models.Day, 0, len(days))
	used := make([]bool, len(days))
	for i := range days {
		if used[i] {
			continue
		}
		grouped = append(grouped, days[i])
		used[i] = true
		if days[i].Lodging == nil {
			continue
		}
		for j := i + 1; j < len(days); j++ {
			if used[j] || days[j].Lodging == nil {
				continue
			}
			if days[j].Lodging.ActivityID == days[i].Lodging.ActivityID {
				grouped = append(grouped, days[j])
				used[j] = true
			}
		}
	}

	// Pass 2: geographic ordering, anchored on the first day of pass 1's
	// output, greedily stepping to the nearest remaining day centroid.
	ordered := make([]models.Day, 0, len(grouped))
	ordered = append(ordered, grouped[0])
	remaining := make([]models.Day, len(grouped)-1)
	copy(remaining, grouped[1:])

	current := p.dayCentroid(grouped[0])
	for len(remaining) > 0 {
		best := 0
		c := p.dayCentroid(remaining[0])
		bestDist := Haversine(current.Lat, current.Lon, c.Lat, c.Lon)
		for i := 1; i < len(remaining); i++ {
			c = p.dayCentroid(remaining[i])
			d := Haversine(current.Lat, current.Lon, c.Lat, c.Lon)
			if d < bestDist {
				best = i
				bestDist = d
			}
		}
		next := remaining[best]
		ordered = append(ordered, next)
		remaining = append(remaining[:best], remaining[best+1:]...)
		current = p.dayCentroid(next)
	}

	for i := range ordered {
		ordered[i].DayNumber = i + 1
	}
	return ordered
}

// dayCentroid reduces a day to a point: the centroid of its geocoded
// activities, falling back to the lodging location, then to (0,0).
func (p *Planner) dayCentroid(day models.Day) Point {
	points := make([]Point, 0, len(day.Activities))
	for _, entry := range day.Activities {
		if entry.Activity.HasCoords() {
			points = append(points, Point{Lat: *entry.Activity.Latitude, Lon: *entry.Activity.Longitude})
		}
	}
	if len(points) > 0 {
		return Centroid(points)
	}
	if day.Lodging != nil && day.Lodging.HasCoords() {
		return Point{Lat: *day.Lodging.Latitude, Lon: *day.Lodging.Longitude}
	}
	return Point{}
}
