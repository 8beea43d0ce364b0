package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/globals"
	"wayfare/models"
	"wayfare/planner"
	"wayfare/suggestions"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	pl  = planner.New(planner.DefaultOptions(), nil)
	src = suggestions.Store{}
)

// writeErr translates planner sentinels into HTTP statuses.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, planner.ErrInvalidRequest):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, planner.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, planner.ErrPermissionDenied):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, planner.ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, planner.ErrNoVotedActivities):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("[ITIN] internal error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func requestingUser(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	return userID, ok && userID != ""
}

func loadTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		return nil, planner.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &trip, nil
}

func loadItinerary(ctx context.Context, tripID, itineraryID string) (*models.Itinerary, error) {
	var it models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{
		"itineraryid": itineraryID,
		"tripid":      tripID,
	}).Decode(&it)
	if err == mongo.ErrNoDocuments {
		return nil, planner.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &it, nil
}

func saveItinerary(ctx context.Context, it *models.Itinerary) error {
	_, err := db.ItineraryCollection.UpdateOne(
		ctx,
		bson.M{"itineraryid": it.ItineraryID},
		bson.M{"$set": bson.M{"days": it.Days, "total_cost": it.TotalCost}},
	)
	return err
}

// GenerateItinerary runs the planning pipeline over the trip's suggestion
// pool and persists the result.
func GenerateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	tripID := ps.ByName("tripid")

	var input struct {
		Name      string `json:"name"`
		MaxPerDay int    `json:"maxPerDay"`
	}
	if r.Body != nil {
		// An empty body means defaults, not an error.
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil && err != io.EOF {
			http.Error(w, "Invalid input", http.StatusBadRequest)
			return
		}
	}

	trip, err := loadTrip(r.Context(), tripID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if !trip.IsMember(userID) {
		writeErr(w, planner.ErrPermissionDenied)
		return
	}

	pool, err := utils.FindAndDecode[models.Activity](r.Context(), db.ActivitiesCollection, bson.M{"tripid": tripID})
	if err != nil {
		writeErr(w, err)
		return
	}

	it, err := pl.Generate(trip, pool, planner.GenerateRequest{
		Name:      input.Name,
		MaxPerDay: input.MaxPerDay,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	it.ItineraryID = "i" + utils.GenerateRandomString(12)
	it.UserID = userID
	it.CreatedAt = time.Now().UTC()

	if _, err := db.ItineraryCollection.InsertOne(context.TODO(), it); err != nil {
		log.Printf("Error inserting itinerary: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, it)
}

func GetItineraries(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 50)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	results, err := utils.FindAndDecode[models.Itinerary](ctx, db.ItineraryCollection, bson.M{"tripid": tripID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch itineraries")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

func GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := loadItinerary(r.Context(), ps.ByName("tripid"), ps.ByName("itineraryid"))
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

func DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := requestingUser(r)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}

	it, err := loadItinerary(r.Context(), ps.ByName("tripid"), ps.ByName("itineraryid"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if it.UserID != userID {
		writeErr(w, planner.ErrPermissionDenied)
		return
	}

	if _, err := db.ItineraryCollection.DeleteOne(r.Context(), bson.M{"itineraryid": it.ItineraryID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted", "itineraryid": it.ItineraryID})
}
