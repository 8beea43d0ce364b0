package trips

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/globals"
	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func requestingUser(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	return userID, ok && userID != ""
}

func CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}

	var trip models.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if trip.Name == "" {
		http.Error(w, "Trip name is required", http.StatusBadRequest)
		return
	}
	if trip.DurationDays < 1 {
		http.Error(w, "Trip duration must be at least one day", http.StatusBadRequest)
		return
	}
	if trip.StartDate != "" {
		if _, err := time.Parse("2006-01-02", trip.StartDate); err != nil {
			http.Error(w, "Start date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	trip.TripID = "t" + utils.GenerateRandomString(12)
	trip.OwnerID = userID
	trip.Members = append([]string{userID}, trip.Members...)
	trip.CreatedAt = time.Now().UTC()

	if _, err := db.TripsCollection.InsertOne(context.TODO(), trip); err != nil {
		log.Printf("Error inserting trip: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving trip")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, trip)
}

func GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	var trip models.Trip
	err := db.TripsCollection.FindOne(r.Context(), bson.M{"tripid": tripID}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, trip)
}

func GetTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)
	filter := bson.M{"members": userID}

	totalCount, err := db.TripsCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("CountDocuments error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trip count")
		return
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	results, err := utils.FindAndDecode[models.Trip](ctx, db.TripsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trips")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"trips":     results,
		"tripCount": totalCount,
		"page":      skip/limit + 1,
		"limit":     limit,
	})
}

func UpdateTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	tripID := ps.ByName("tripid")

	var trip models.Trip
	err := db.TripsCollection.FindOne(r.Context(), bson.M{"tripid": tripID}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	if trip.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the trip owner can edit it")
		return
	}

	var input struct {
		Name         *string `json:"name"`
		DurationDays *int    `json:"durationDays"`
		StartDate    *string `json:"startDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	if input.Name != nil && *input.Name != "" {
		update["name"] = *input.Name
	}
	if input.DurationDays != nil {
		if *input.DurationDays < 1 {
			http.Error(w, "Trip duration must be at least one day", http.StatusBadRequest)
			return
		}
		update["duration_days"] = *input.DurationDays
	}
	if input.StartDate != nil {
		if *input.StartDate != "" {
			if _, err := time.Parse("2006-01-02", *input.StartDate); err != nil {
				http.Error(w, "Start date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}
		update["start_date"] = *input.StartDate
	}
	if len(update) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, trip)
		return
	}

	err = db.TripsCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"tripid": tripID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&trip)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update trip")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, trip)
}

func DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	tripID := ps.ByName("tripid")

	var trip models.Trip
	err := db.TripsCollection.FindOne(r.Context(), bson.M{"tripid": tripID}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	if trip.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the trip owner can delete it")
		return
	}

	if _, err := db.TripsCollection.DeleteOne(r.Context(), bson.M{"tripid": tripID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete trip")
		return
	}
	// Cascade: suggestions and generated itineraries belong to the trip.
	if _, err := db.ActivitiesCollection.DeleteMany(r.Context(), bson.M{"tripid": tripID}); err != nil {
		log.Printf("Failed to delete activities for trip %s: %v", tripID, err)
	}
	if _, err := db.ItineraryCollection.DeleteMany(r.Context(), bson.M{"tripid": tripID}); err != nil {
		log.Printf("Failed to delete itineraries for trip %s: %v", tripID, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted", "tripid": tripID})
}

func AddMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	tripID := ps.ByName("tripid")

	var input struct {
		UserID string `json:"userid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.UserID == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	var trip models.Trip
	err := db.TripsCollection.FindOne(r.Context(), bson.M{"tripid": tripID}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	if trip.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the trip owner can add members")
		return
	}

	err = db.TripsCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"tripid": tripID},
		bson.M{"$addToSet": bson.M{"members": input.UserID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&trip)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add member")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, trip)
}
