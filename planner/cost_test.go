package planner

import (
	"testing"

	"wayfare/models"

	"github.com/stretchr/testify/require"
)

func TestDayAndTotalCost(t *testing.T) {
	museum := activityAt("museum", 48.85, 2.35)
	museum.Price = models.ParseMoney(1000)
	show := activityAt("show", 48.86, 2.36)
	show.Price = models.ParseMoney(500)

	hotel := snapAt("h", 48.85, 2.35)
	hotel.Price = models.ParseMoney(10000)

	days := []models.Day{
		dayWith(1, hotel, museum, show),
		dayWith(2, nil),
	}

	totals := DailyTotals(days)
	require.Equal(t, models.ParseMoney(11500), totals[0])
	require.Equal(t, models.Money(0), totals[1])
	require.Equal(t, models.ParseMoney(11500), TotalCost(days))
}

func TestCostMissingPricesCountAsZero(t *testing.T) {
	free := activityAt("free", 48.85, 2.35) // zero-value price

	days := []models.Day{dayWith(1, nil, free)}
	require.Equal(t, models.Money(0), TotalCost(days))
}

func TestCostEmptyDays(t *testing.T) {
	require.Equal(t, models.Money(0), TotalCost(nil))
	require.Empty(t, DailyTotals(nil))
}
