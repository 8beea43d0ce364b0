package suggestions

import (
	"context"
	"log"

	"wayfare/db"
	"wayfare/models"
	"wayfare/planner"

	"go.mongodb.org/mongo-driver/bson"
)

// propagateActivity refreshes the stale snapshots of one activity across
// every itinerary of its trip. Runs synchronously on activity edits so
// reads after the edit already see fresh snapshots; the message queue
// event only nudges other listeners.
func propagateActivity(ctx context.Context, pl *planner.Planner, act *models.Activity) {
	cursor, err := db.ItineraryCollection.Find(ctx, bson.M{"tripid": act.TripID})
	if err != nil {
		log.Printf("[SYNC] failed to list itineraries for trip %s: %v", act.TripID, err)
		return
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var it models.Itinerary
		if err := cursor.Decode(&it); err != nil {
			log.Printf("[SYNC] failed to decode itinerary: %v", err)
			continue
		}
		if !pl.ResyncSnapshots(&it, act) {
			continue
		}
		_, err := db.ItineraryCollection.UpdateOne(
			ctx,
			bson.M{"itineraryid": it.ItineraryID},
			bson.M{"$set": bson.M{"days": it.Days, "total_cost": it.TotalCost}},
		)
		if err != nil {
			log.Printf("[SYNC] failed to persist itinerary %s: %v", it.ItineraryID, err)
		}
	}
	if err := cursor.Err(); err != nil {
		log.Printf("[SYNC] cursor error for trip %s: %v", act.TripID, err)
	}
}
