package mq

import (
	"context"
	"encoding/json"
	"log"

	"wayfare/rdx"
)

// ActivityChannel carries activity change notifications from the
// suggestions vertical to the itinerary snapshot-sync worker.
const ActivityChannel = "activity-events"

// ActivityEvent describes a change to a canonical activity record.
type ActivityEvent struct {
	Method     string `json:"method"` // updated / deleted
	ActivityID string `json:"activityid"`
	TripID     string `json:"tripid"`
}

// Emit publishes an activity event to Redis. Failures are logged and
// swallowed: the synchronous snapshot fan-out already ran, the event is
// only a nudge for listeners.
func Emit(ctx context.Context, event ActivityEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, ActivityChannel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s for activity %s: %v", event.Method, event.ActivityID, err)
	}
}
