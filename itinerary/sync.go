package itinerary

import (
	"context"
	"encoding/json"
	"log"

	"wayfare/db"
	"wayfare/models"
	"wayfare/mq"
	"wayfare/rdx"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StartSyncWorker subscribes to activity change events and refreshes the
// snapshots held by itineraries of the affected trip. The suggestions
// handlers already fan out synchronously; this worker catches writes
// from other processes and replays missed updates. Runs until ctx ends.
func StartSyncWorker(ctx context.Context) {
	sub := rdx.Conn.Subscribe(ctx, mq.ActivityChannel)
	defer sub.Close()

	log.Printf("[SYNC] worker listening on %s", mq.ActivityChannel)
	for {
		select {
		case <-ctx.Done():
			log.Println("[SYNC] worker stopping")
			return
		case msg, open := <-sub.Channel():
			if !open {
				log.Println("[SYNC] subscription closed")
				return
			}
			var event mq.ActivityEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[SYNC] bad event payload: %v", err)
				continue
			}
			if event.Method != "updated" {
				continue
			}
			applyActivityUpdate(ctx, event)
		}
	}
}

func applyActivityUpdate(ctx context.Context, event mq.ActivityEvent) {
	var act models.Activity
	err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": event.ActivityID}).Decode(&act)
	if err == mongo.ErrNoDocuments {
		return
	} else if err != nil {
		log.Printf("[SYNC] failed to load activity %s: %v", event.ActivityID, err)
		return
	}

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
		if !pl.ResyncSnapshots(&it, &act) {
			continue
		}
		if err := saveItinerary(ctx, &it); err != nil {
			log.Printf("[SYNC] failed to persist itinerary %s: %v", it.ItineraryID, err)
		}
	}
	if err := cursor.Err(); err != nil {
		log.Printf("[SYNC] cursor error for trip %s: %v", act.TripID, err)
	}
}
