package itinerary

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wayfare/models"
	"wayfare/planner"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
)

// loadOwned fetches the itinerary and enforces that the caller created
// it. Mutations are single-writer by ownership.
func loadOwned(r *http.Request, ps httprouter.Params) (*models.Itinerary, error) {
	userID, ok := requestingUser(r)
	if !ok {
		return nil, planner.ErrPermissionDenied
	}
	it, err := loadItinerary(r.Context(), ps.ByName("tripid"), ps.ByName("itineraryid"))
	if err != nil {
		return nil, err
	}
	if it.UserID != userID {
		return nil, planner.ErrPermissionDenied
	}
	return it, nil
}

func dayParam(ps httprouter.Params) (int, error) {
	n, err := strconv.Atoi(ps.ByName("daynum"))
	if err != nil {
		return 0, planner.ErrInvalidRequest
	}
	return n, nil
}

// ReorderDay rebuilds one day from an ordered activity id list.
func ReorderDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := loadOwned(r, ps)
	if err != nil {
		writeErr(w, err)
		return
	}
	dayNumber, err := dayParam(ps)
	if err != nil {
		writeErr(w, err)
		return
	}

	var input struct {
		Order []string `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := pl.ReorderDay(it, dayNumber, input.Order); err != nil {
		writeErr(w, err)
		return
	}
	if err := saveItinerary(r.Context(), it); err != nil {
		writeErr(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, it)
}

// ReorderAllDays replaces the day layout wholesale.
func ReorderAllDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := loadOwned(r, ps)
	if err != nil {
		writeErr(w, err)
		return
	}

	var input struct {
		Days []planner.DayOrder `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := pl.ReorderAllDays(r.Context(), it, input.Days, src); err != nil {
		writeErr(w, err)
		return
	}
	if err := saveItinerary(r.Context(), it); err != nil {
		writeErr(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, it)
}

// UpdateDayLodging sets or clears one day's lodging.
func UpdateDayLodging(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := loadOwned(r, ps)
	if err != nil {
		writeErr(w, err)
		return
	}
	dayNumber, err := dayParam(ps)
	if err != nil {
		writeErr(w, err)
		return
	}

	var input struct {
		ActivityID *string `json:"activityid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := pl.UpdateDayLodging(r.Context(), it, dayNumber, input.ActivityID, src); err != nil {
		writeErr(w, err)
		return
	}
	if err := saveItinerary(r.Context(), it); err != nil {
		writeErr(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, it)
}

// AddActivityToDay appends a pool activity to the end of a day.
func AddActivityToDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := loadOwned(r, ps)
	if err != nil {
		writeErr(w, err)
		return
	}
	dayNumber, err := dayParam(ps)
	if err != nil {
		writeErr(w, err)
		return
	}

	var input struct {
		ActivityID string `json:"activityid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ActivityID == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := pl.AddActivity(r.Context(), it, dayNumber, input.ActivityID, src); err != nil {
		writeErr(w, err)
		return
	}
	if err := saveItinerary(r.Context(), it); err != nil {
		writeErr(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, it)
}
