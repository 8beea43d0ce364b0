package planner

import (
	"testing"

	"wayfare/models"

	"github.com/stretchr/testify/require"
)

func testTrip(days int) *models.Trip {
	return &models.Trip{
		TripID:       "t1",
		Name:         "Western Europe",
		OwnerID:      "owner",
		DurationDays: days,
		StartDate:    "2026-09-14",
	}
}

func testPool() []models.Activity {
	louvre := activityAt("louvre", 48.8606, 2.3376)
	louvre.Price = models.ParseMoney(22)
	louvre.Votes = votes(3, models.PriorityHigh)

	eiffel := activityAt("eiffel", 48.8584, 2.2945)
	eiffel.Price = models.ParseMoney(28)
	eiffel.Votes = votes(2, models.PriorityMedium)

	orsay := activityAt("orsay", 48.8600, 2.3266)
	orsay.Price = models.ParseMoney(16)
	orsay.Votes = votes(1, models.PriorityLow)

	colosseum := activityAt("colosseum", 41.8902, 12.4922)
	colosseum.Price = models.ParseMoney(18)
	colosseum.Votes = votes(2, models.PriorityHigh)

	vatican := activityAt("vatican", 41.9029, 12.4534)
	vatican.Price = models.ParseMoney(20)
	vatican.Votes = votes(1, models.PriorityMedium)

	unvoted := activityAt("skipped", 48.8738, 2.2950)

	parisHotel := lodgingAt("paris-hotel", 48.8610, 2.3350, models.ParseMoney(180))
	romeHotel := lodgingAt("rome-hotel", 41.8955, 12.4823, models.ParseMoney(150))

	return []models.Activity{
		louvre, eiffel, orsay, colosseum, vatican, unvoted, parisHotel, romeHotel,
	}
}

func TestGenerate(t *testing.T) {
	p := testPlanner()

	it, err := p.Generate(testTrip(3), testPool(), GenerateRequest{Name: "summer trip"})
	require.NoError(t, err)
	require.Equal(t, "summer trip", it.Name)
	require.Equal(t, "t1", it.TripID)
	require.Equal(t, 3, it.TotalDays)
	requireInvariants(t, it)

	// Every voted activity landed somewhere, the unvoted one nowhere.
	for _, id := range []string{"louvre", "eiffel", "orsay", "colosseum", "vatican"} {
		require.True(t, it.HasActivity(id), "%s should be scheduled", id)
	}
	require.False(t, it.HasActivity("skipped"))

	// Dates run from the trip start.
	require.Equal(t, "2026-09-14", it.Days[0].Date)
	require.Equal(t, "2026-09-16", it.Days[2].Date)

	// Paris and Rome stops never share a day, and each scheduled day
	// got the lodging from its own city.
	for _, day := range it.Days {
		var paris, rome bool
		for _, entry := range day.Activities {
			if *entry.Activity.Latitude > 45 {
				paris = true
			} else {
				rome = true
			}
		}
		require.False(t, paris && rome, "day %d mixes clusters", day.DayNumber)
		if paris {
			require.Equal(t, "paris-hotel", day.Lodging.ActivityID)
		}
		if rome {
			require.Equal(t, "rome-hotel", day.Lodging.ActivityID)
		}
	}
}

func TestGenerateNoVotes(t *testing.T) {
	p := testPlanner()

	pool := []models.Activity{
		activityAt("a", 1, 1),
		lodgingAt("h", 1, 1, 0),
	}
	_, err := p.Generate(testTrip(2), pool, GenerateRequest{})
	require.ErrorIs(t, err, ErrNoVotedActivities)
}

func TestGenerateInvalidRequests(t *testing.T) {
	p := testPlanner()

	_, err := p.Generate(nil, nil, GenerateRequest{})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = p.Generate(testTrip(0), nil, GenerateRequest{})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = p.Generate(testTrip(2), testPool(), GenerateRequest{MaxPerDay: 11})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateWithoutStartDate(t *testing.T) {
	p := testPlanner()

	trip := testTrip(2)
	trip.StartDate = ""
	it, err := p.Generate(trip, testPool(), GenerateRequest{})
	require.NoError(t, err)
	for _, day := range it.Days {
		require.Empty(t, day.Date)
	}
}

func TestGenerateDefaultName(t *testing.T) {
	p := testPlanner()

	it, err := p.Generate(testTrip(2), testPool(), GenerateRequest{})
	require.NoError(t, err)
	require.Equal(t, "Western Europe itinerary", it.Name)
}

func TestGenerateSkipsUngeocoded(t *testing.T) {
	p := testPlanner()

	blind := models.Activity{
		ActivityID: "blind",
		Category:   "sightseeing",
		Votes:      votes(5, models.PriorityHigh),
	}
	voted := activityAt("seen", 48.85, 2.35)
	voted.Votes = votes(1, models.PriorityLow)

	it, err := p.Generate(testTrip(1), []models.Activity{blind, voted}, GenerateRequest{})
	require.NoError(t, err)
	require.True(t, it.HasActivity("seen"))
	require.False(t, it.HasActivity("blind"))
}
