package planner

import (
	"context"
	"testing"

	"wayfare/models"

	"github.com/stretchr/testify/require"
)

func testItinerary() *models.Itinerary {
	a := activityAt("a", 48.85, 2.35)
	a.Price = models.ParseMoney(10)
	b := activityAt("b", 48.86, 2.36)
	b.Price = models.ParseMoney(20)
	c := activityAt("c", 41.90, 12.50)
	c.Price = models.ParseMoney(30)

	it := &models.Itinerary{
		ItineraryID: "it1",
		TripID:      "t1",
		UserID:      "owner",
		TotalDays:   2,
		Days: []models.Day{
			dayWith(1, nil, a, b),
			dayWith(2, nil, c),
		},
	}
	it.TotalCost = TotalCost(it.Days)
	return it
}

func TestReorderDay(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	// Pull c in from day 2 and flip the order of day 1.
	err := p.ReorderDay(it, 1, []string{"c", "b", "a"})
	require.NoError(t, err)

	require.Len(t, it.Days[0].Activities, 3)
	require.Equal(t, "c", it.Days[0].Activities[0].ActivityID)
	require.Equal(t, "b", it.Days[0].Activities[1].ActivityID)
	require.Equal(t, "a", it.Days[0].Activities[2].ActivityID)
	require.Empty(t, it.Days[1].Activities)
	requireInvariants(t, it)
}

func TestReorderDaySkipsUnknownIDs(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	err := p.ReorderDay(it, 1, []string{"ghost", "b", "a"})
	require.NoError(t, err, "unknown ids are a warning, not an error")

	require.Equal(t, "b", it.Days[0].Activities[0].ActivityID)
	require.Equal(t, "a", it.Days[0].Activities[1].ActivityID)
	requireInvariants(t, it)
}

func TestReorderDayKeepsUnnamedEntries(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	// Only name b: a stays on the day, behind it.
	err := p.ReorderDay(it, 1, []string{"b"})
	require.NoError(t, err)
	require.Equal(t, "b", it.Days[0].Activities[0].ActivityID)
	require.Equal(t, "a", it.Days[0].Activities[1].ActivityID)
	requireInvariants(t, it)
}

func TestReorderDayOutOfRange(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	require.ErrorIs(t, p.ReorderDay(it, 0, nil), ErrInvalidRequest)
	require.ErrorIs(t, p.ReorderDay(it, 3, nil), ErrInvalidRequest)
}

func TestReorderAllDays(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	outside := activityAt("d", 48.87, 2.37)
	outside.Price = models.ParseMoney(40)
	src := &stubSource{activities: map[string]models.Activity{"d": outside}}

	err := p.ReorderAllDays(context.Background(), it, []DayOrder{
		{DayNumber: 1, Activities: []OrderedActivity{
			{ActivityID: "c", OrderInDay: 1},
			{ActivityID: "a", OrderInDay: 2},
		}},
		{DayNumber: 2, Activities: []OrderedActivity{
			{ActivityID: "d", OrderInDay: 1}, // fetched from the source
			{ActivityID: "b", OrderInDay: 2},
		}},
	}, src)
	require.NoError(t, err)

	require.Equal(t, "c", it.Days[0].Activities[0].ActivityID)
	require.Equal(t, "a", it.Days[0].Activities[1].ActivityID)
	require.Equal(t, "d", it.Days[1].Activities[0].ActivityID)
	require.Equal(t, "b", it.Days[1].Activities[1].ActivityID)
	require.Equal(t, models.ParseMoney(100), it.TotalCost)
	requireInvariants(t, it)
}

func TestReorderAllDaysSkipsBadDaysAndIDs(t *testing.T) {
	p := testPlanner()
	it := testItinerary()
	src := &stubSource{activities: map[string]models.Activity{}}

	err := p.ReorderAllDays(context.Background(), it, []DayOrder{
		{DayNumber: 9, Activities: []OrderedActivity{{ActivityID: "a", OrderInDay: 1}}},
		{DayNumber: 1, Activities: []OrderedActivity{
			{ActivityID: "a", OrderInDay: 1},
			{ActivityID: "ghost", OrderInDay: 2},
		}},
	}, src)
	require.NoError(t, err)

	require.Len(t, it.Days[0].Activities, 1)
	require.Equal(t, "a", it.Days[0].Activities[0].ActivityID)
	requireInvariants(t, it)
}

func TestUpdateDayLodging(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	hotel := lodgingAt("h", 48.85, 2.35, models.ParseMoney(200))
	src := &stubSource{activities: map[string]models.Activity{"h": hotel}}

	id := "h"
	require.NoError(t, p.UpdateDayLodging(context.Background(), it, 1, &id, src))
	require.NotNil(t, it.Days[0].Lodging)
	require.Equal(t, models.ParseMoney(260), it.TotalCost)
	requireInvariants(t, it)

	// Clearing drops the price again.
	require.NoError(t, p.UpdateDayLodging(context.Background(), it, 1, nil, src))
	require.Nil(t, it.Days[0].Lodging)
	require.Equal(t, models.ParseMoney(60), it.TotalCost)
}

func TestUpdateDayLodgingErrors(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	notAHotel := activityAt("x", 1, 1)
	src := &stubSource{activities: map[string]models.Activity{"x": notAHotel}}

	id := "x"
	require.ErrorIs(t, p.UpdateDayLodging(context.Background(), it, 1, &id, src), ErrInvalidRequest)

	missing := "nope"
	require.ErrorIs(t, p.UpdateDayLodging(context.Background(), it, 1, &missing, src), ErrNotFound)

	require.ErrorIs(t, p.UpdateDayLodging(context.Background(), it, 5, nil, src), ErrInvalidRequest)
}

func TestAddActivity(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	d := activityAt("d", 48.87, 2.37)
	d.Price = models.ParseMoney(15)
	src := &stubSource{activities: map[string]models.Activity{"d": d}}

	require.NoError(t, p.AddActivity(context.Background(), it, 2, "d", src))
	require.Len(t, it.Days[1].Activities, 2)
	require.Equal(t, 2, it.Days[1].Activities[1].OrderInDay)
	require.Equal(t, models.ParseMoney(75), it.TotalCost)
	requireInvariants(t, it)
}

func TestAddActivityConflict(t *testing.T) {
	p := testPlanner()
	it := testItinerary()
	src := &stubSource{activities: map[string]models.Activity{}}

	before := *it
	err := p.AddActivity(context.Background(), it, 2, "a", src)
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, before.TotalCost, it.TotalCost, "itinerary must be unchanged on conflict")
	require.Len(t, it.Days[1].Activities, 1)
	requireInvariants(t, it)
}

func TestAddActivityNotFound(t *testing.T) {
	p := testPlanner()
	it := testItinerary()
	src := &stubSource{activities: map[string]models.Activity{}}

	require.ErrorIs(t, p.AddActivity(context.Background(), it, 1, "ghost", src), ErrNotFound)
	require.ErrorIs(t, p.AddActivity(context.Background(), it, 0, "d", src), ErrInvalidRequest)
}

func TestResyncSnapshots(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	updated := activityAt("a", 48.85, 2.35)
	updated.Name = "renamed"
	updated.Price = models.ParseMoney(99)

	require.True(t, p.ResyncSnapshots(it, &updated))
	require.Equal(t, "renamed", it.Days[0].Activities[0].Activity.Name)
	require.Equal(t, models.ParseMoney(149), it.TotalCost)
	requireInvariants(t, it)

	// Second pass with identical data reports no change.
	require.False(t, p.ResyncSnapshots(it, &updated))
}

func TestResyncSnapshotsUpdatesLodging(t *testing.T) {
	p := testPlanner()
	it := testItinerary()

	hotel := lodgingAt("h", 48.85, 2.35, models.ParseMoney(100))
	snap := hotel.Snapshot()
	it.Days[0].Lodging = &snap
	it.TotalCost = TotalCost(it.Days)

	hotel.Price = models.ParseMoney(150)
	require.True(t, p.ResyncSnapshots(it, &hotel))
	require.Equal(t, models.ParseMoney(150), it.Days[0].Lodging.Price)
	requireInvariants(t, it)
}
