package models

import "time"

// Trip is the group travel context an itinerary is generated for.
type Trip struct {
	TripID       string    `json:"tripid" bson:"tripid"`
	Name         string    `json:"name" bson:"name"`
	OwnerID      string    `json:"owner_id" bson:"owner_id"`
	Members      []string  `json:"members" bson:"members"`
	DurationDays int       `json:"duration_days" bson:"duration_days"`
	StartDate    string    `json:"start_date,omitempty" bson:"start_date,omitempty"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func (t *Trip) IsMember(userID string) bool {
	if t.OwnerID == userID {
		return true
	}
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}
