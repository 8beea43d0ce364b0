package suggestions

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/globals"
	"wayfare/models"
	"wayfare/mq"
	"wayfare/planner"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var syncPlanner = planner.New(planner.DefaultOptions(), nil)

func requestingUser(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	return userID, ok && userID != ""
}

func memberOfTrip(ctx context.Context, tripID, userID string) (bool, error) {
	var trip models.Trip
	err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip)
	if err != nil {
		return false, err
	}
	return trip.IsMember(userID), nil
}

func CreateActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	tripID := ps.ByName("tripid")

	var act models.Activity
	if err := json.NewDecoder(r.Body).Decode(&act); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if act.Name == "" {
		http.Error(w, "Activity name is required", http.StatusBadRequest)
		return
	}
	if act.DurationHours < 0 {
		http.Error(w, "Duration cannot be negative", http.StatusBadRequest)
		return
	}

	isMember, err := memberOfTrip(r.Context(), tripID, userID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	if !isMember {
		utils.RespondWithError(w, http.StatusForbidden, "Only trip members can suggest activities")
		return
	}

	act.ActivityID = "a" + utils.GenerateRandomString(12)
	act.TripID = tripID
	act.CreatedBy = userID
	act.CreatedAt = time.Now().UTC()
	act.Votes = []models.Vote{}
	if act.Category == "" {
		act.Category = models.CategoryOther
	}

	if _, err := db.ActivitiesCollection.InsertOne(context.TODO(), act); err != nil {
		log.Printf("Error inserting activity: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving activity")
		return
	}

	go mq.Emit(context.Background(), mq.ActivityEvent{
		Method: "created", ActivityID: act.ActivityID, TripID: tripID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, act)
}

func GetActivities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 50, 200)
	filter := bson.M{"tripid": tripID}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["category"] = cat
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: 1}})
	results, err := utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

func GetActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	var act models.Activity
	err := db.ActivitiesCollection.FindOne(r.Context(), bson.M{"activityid": activityID}).Decode(&act)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, act)
}

func UpdateActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	activityID := ps.ByName("activityid")

	var act models.Activity
	err := db.ActivitiesCollection.FindOne(r.Context(), bson.M{"activityid": activityID}).Decode(&act)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}
	if act.CreatedBy != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the author can edit a suggestion")
		return
	}

	var input struct {
		Name          *string  `json:"name"`
		Category      *string  `json:"category"`
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		DurationHours *float64 `json:"duration_hours"`
		Price         any      `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	if input.Name != nil && *input.Name != "" {
		update["name"] = *input.Name
	}
	if input.Category != nil && *input.Category != "" {
		update["category"] = *input.Category
	}
	if input.Latitude != nil {
		update["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		update["longitude"] = *input.Longitude
	}
	if input.DurationHours != nil {
		if *input.DurationHours < 0 {
			http.Error(w, "Duration cannot be negative", http.StatusBadRequest)
			return
		}
		update["duration_hours"] = *input.DurationHours
	}
	if input.Price != nil {
		update["price"] = models.ParseMoney(input.Price)
	}
	if len(update) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, act)
		return
	}

	err = db.ActivitiesCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"activityid": activityID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&act)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update activity")
		return
	}

	// Every itinerary holding a snapshot of this activity must see the
	// edit before the response goes out.
	propagateActivity(r.Context(), syncPlanner, &act)

	go mq.Emit(context.Background(), mq.ActivityEvent{
		Method: "updated", ActivityID: act.ActivityID, TripID: act.TripID,
	})

	utils.RespondWithJSON(w, http.StatusOK, act)
}

func DeleteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	activityID := ps.ByName("activityid")

	var act models.Activity
	err := db.ActivitiesCollection.FindOne(r.Context(), bson.M{"activityid": activityID}).Decode(&act)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}
	if act.CreatedBy != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the author can delete a suggestion")
		return
	}

	if _, err := db.ActivitiesCollection.DeleteOne(r.Context(), bson.M{"activityid": activityID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete activity")
		return
	}

	go mq.Emit(context.Background(), mq.ActivityEvent{
		Method: "deleted", ActivityID: activityID, TripID: act.TripID,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted", "activityid": activityID})
}

// VoteActivity records or replaces the caller's vote. One vote per user
// per activity; voting again overwrites the previous one.
func VoteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	activityID := ps.ByName("activityid")

	var input struct {
		Selected bool   `json:"selected"`
		Priority string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	switch input.Priority {
	case "", models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	default:
		http.Error(w, "Priority must be high, medium or low", http.StatusBadRequest)
		return
	}

	var act models.Activity
	err := db.ActivitiesCollection.FindOne(r.Context(), bson.M{"activityid": activityID}).Decode(&act)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}
	if act.Category == models.CategoryLodging || act.Category == models.CategoryOther {
		utils.RespondWithError(w, http.StatusBadRequest, "Lodging and logistics entries are not voted on")
		return
	}

	isMember, err := memberOfTrip(r.Context(), act.TripID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	if !isMember {
		utils.RespondWithError(w, http.StatusForbidden, "Only trip members can vote")
		return
	}

	vote := models.Vote{UserID: userID, Selected: input.Selected, Priority: input.Priority}

	// Replace any previous vote by this user, then push the new one.
	if _, err := db.ActivitiesCollection.UpdateOne(
		r.Context(),
		bson.M{"activityid": activityID},
		bson.M{"$pull": bson.M{"votes": bson.M{"userid": userID}}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}
	err = db.ActivitiesCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"activityid": activityID},
		bson.M{"$push": bson.M{"votes": vote}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&act)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, act)
}
