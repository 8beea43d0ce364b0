package models

import "time"

// Activity categories. "lodging" is reserved: lodging entries are never
// voted on or scheduled as stops, they are matched to days by geography.
// "other" covers logistics entries that never get scheduled either.
const (
	CategoryLodging = "lodging"
	CategoryOther   = "other"
)

// Vote priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Vote struct {
	UserID   string `json:"userid" bson:"userid"`
	Selected bool   `json:"selected" bson:"selected"`
	Priority string `json:"priority" bson:"priority"`
}

// Activity is a candidate stop suggested for a trip. Coordinates are
// pointers because ungeocoded suggestions exist and must be excluded
// from clustering rather than treated as (0,0).
type Activity struct {
	ActivityID    string    `json:"activityid" bson:"activityid"`
	TripID        string    `json:"tripid" bson:"tripid"`
	Name          string    `json:"name" bson:"name"`
	Category      string    `json:"category" bson:"category"`
	Latitude      *float64  `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty" bson:"longitude,omitempty"`
	DurationHours float64   `json:"duration_hours" bson:"duration_hours"`
	Price         Money     `json:"price" bson:"price"`
	Votes         []Vote    `json:"votes" bson:"votes"`
	CreatedBy     string    `json:"created_by" bson:"created_by"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

func (a *Activity) HasCoords() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// Snapshot copies the display fields embedded into itinerary days.
func (a *Activity) Snapshot() ActivitySnapshot {
	return ActivitySnapshot{
		ActivityID:    a.ActivityID,
		Name:          a.Name,
		Category:      a.Category,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		DurationHours: a.DurationHours,
		Price:         a.Price,
	}
}
