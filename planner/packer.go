package planner

import "wayfare/models"

// packDays walks the clusters in order and fills day slots under the
// daily time budget. Travel time between stops (and from the day's
// lodging to its first stop) is charged against the same budget as the
// visits themselves, so a day of far-apart stops fills up faster; that
// is the load-balancing mechanism, not a hard constraint. The last day
// never spills into a day that doesn't exist, it just runs past 100%
// load.
func (p *Planner) packDays(clusters [][]models.Activity, lodgings []models.Activity, totalDays int) []models.Day {
	days := make([]models.Day, totalDays)
	for i := range days {
		days[i] = models.Day{DayNumber: i + 1, Activities: []models.DayActivity{}}
	}

	if len(clusters) == 0 {
		// Nothing schedulable: spread lodging one per day and stop.
		for i := 0; i < len(lodgings) && i < totalDays; i++ {
			snap := lodgings[i].Snapshot()
			days[i].Lodging = &snap
		}
		return days
	}

	cur := 0
	hours := 0.0

	for _, cluster := range clusters {
		routed := p.routeCluster(cluster)
		lodging, lodgingDist := p.matchLodging(routed, lodgings)
		if lodging != nil && p.Opts.LodgingCutoffKm > 0 && lodgingDist > p.Opts.LodgingCutoffKm {
			p.Log.Printf("[PACK] lodging %s is %.1f km from the cluster, beyond the %.0f km cutoff; days stay without lodging",
				lodging.ActivityID, lodgingDist, p.Opts.LodgingCutoffKm)
			lodging = nil
		}

		// Clusters are never interleaved within a day: a new cluster
		// opens a fresh day whenever one is left.
		if len(days[cur].Activities) > 0 && cur < totalDays-1 {
			cur++
			hours = 0
		}
		firstDay := cur

		for _, act := range routed {
			travel := p.travelHours(p.dayOrigin(&days[cur], lodging), act)
			duration := act.DurationHours
			if duration <= 0 {
				duration = p.Opts.DefaultDurationHours
			}

			if hours+duration+travel > p.Opts.DayTargetHours && cur < totalDays-1 {
				cur++
				hours = 0
				// Fresh day: the walk starts at the lodging again.
				travel = p.travelHours(lodgingPoint(lodging), act)
			}

			days[cur].Activities = append(days[cur].Activities, models.DayActivity{
				ActivityID: act.ActivityID,
				OrderInDay: len(days[cur].Activities) + 1,
				Activity:   act.Snapshot(),
			})
			hours += duration + travel
			days[cur].Load = hours / p.Opts.DayTargetHours * 100
		}

		if days[cur].Load > 100 {
			p.Log.Printf("[PACK] day %d overloaded at %.0f%%", cur+1, days[cur].Load)
		}

		// Back-fill the cluster's lodging onto every day it touched.
		if lodging != nil {
			for d := firstDay; d <= cur; d++ {
				if days[d].Lodging == nil {
					snap := lodging.Snapshot()
					days[d].Lodging = &snap
				}
			}
		}
	}

	return days
}

// travelHours is the walk from the origin to the activity at WalkSpeedKmh.
// No origin (empty day without lodging) means no travel charge.
func (p *Planner) travelHours(from *Point, act models.Activity) float64 {
	if from == nil || !act.HasCoords() {
		return 0
	}
	return Haversine(from.Lat, from.Lon, *act.Latitude, *act.Longitude) / p.Opts.WalkSpeedKmh
}

// dayOrigin is the point the next walk starts from: the day's last
// activity, or the matched lodging when the day is still empty.
func (p *Planner) dayOrigin(day *models.Day, lodging *models.Activity) *Point {
	for i := len(day.Activities) - 1; i >= 0; i-- {
		snap := day.Activities[i].Activity
		if snap.HasCoords() {
			return &Point{Lat: *snap.Latitude, Lon: *snap.Longitude}
		}
	}
	return lodgingPoint(lodging)
}

func lodgingPoint(lodging *models.Activity) *Point {
	if lodging == nil || !lodging.HasCoords() {
		return nil
	}
	return &Point{Lat: *lodging.Latitude, Lon: *lodging.Longitude}
}
