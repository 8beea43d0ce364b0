package models

import "time"

// ActivitySnapshot is the denormalized copy of an activity kept inside a
// day for display. The canonical record lives in the activities
// collection; snapshots are refreshed by the resync fan-out.
type ActivitySnapshot struct {
	ActivityID    string   `json:"activityid" bson:"activityid"`
	Name          string   `json:"name" bson:"name"`
	Category      string   `json:"category" bson:"category"`
	Latitude      *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
	DurationHours float64  `json:"duration_hours" bson:"duration_hours"`
	Price         Money    `json:"price" bson:"price"`
}

func (s *ActivitySnapshot) HasCoords() bool {
	return s.Latitude != nil && s.Longitude != nil
}

type DayActivity struct {
	ActivityID string           `json:"activityid" bson:"activityid"`
	OrderInDay int              `json:"order_in_day" bson:"order_in_day"`
	Activity   ActivitySnapshot `json:"activity" bson:"activity"`
}

type Day struct {
	DayNumber  int               `json:"day_number" bson:"day_number"`
	Date       string            `json:"date,omitempty" bson:"date,omitempty"`
	Activities []DayActivity     `json:"activities" bson:"activities"`
	Lodging    *ActivitySnapshot `json:"lodging,omitempty" bson:"lodging,omitempty"`
	// Load is accumulated visit+travel hours as a percent of the daily
	// budget. Over 100 means the last day overflowed, never an error.
	Load float64 `json:"load" bson:"load"`
}

// Itinerary is the generated day-by-day schedule for a trip.
type Itinerary struct {
	ItineraryID string    `json:"itineraryid" bson:"itineraryid"`
	TripID      string    `json:"tripid" bson:"tripid"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Name        string    `json:"name" bson:"name"`
	TotalDays   int       `json:"total_days" bson:"total_days"`
	Days        []Day     `json:"days" bson:"days"`
	TotalCost   Money     `json:"total_cost" bson:"total_cost"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// HasActivity reports whether the activity id is scheduled on any day.
func (it *Itinerary) HasActivity(activityID string) bool {
	for i := range it.Days {
		for j := range it.Days[i].Activities {
			if it.Days[i].Activities[j].ActivityID == activityID {
				return true
			}
		}
	}
	return false
}
