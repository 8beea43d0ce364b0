package planner

import "wayfare/models"

// DayCost sums a day's activity prices plus its lodging price, if any.
func DayCost(day models.Day) models.Money {
	var total models.Money
	for _, entry := range day.Activities {
		total += entry.Activity.Price
	}
	if day.Lodging != nil {
		total += day.Lodging.Price
	}
	return total
}

// TotalCost recomputes the itinerary total from scratch. It is never
// maintained incrementally, so it cannot drift from the day contents.
func TotalCost(days []models.Day) models.Money {
	var total models.Money
	for i := range days {
		total += DayCost(days[i])
	}
	return total
}

// DailyTotals returns the per-day cost breakdown in day order.
func DailyTotals(days []models.Day) []models.Money {
	totals := make([]models.Money, len(days))
	for i := range days {
		totals[i] = DayCost(days[i])
	}
	return totals
}
