package routes

import (
	"wayfare/auth"
	"wayfare/itinerary"
	"wayfare/middleware"
	"wayfare/ratelim"
	"wayfare/suggestions"
	"wayfare/trips"
	"wayfare/utils"

	"net/http"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddTripRoutes(router, rateLimiter)
	AddSuggestionRoutes(router, rateLimiter)
	AddItineraryRoutes(router, rateLimiter)
	AddUtilityRoutes(router, rateLimiter)
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rateLimiter.Limit(auth.RefreshToken))
}

func AddTripRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/trips", middleware.Authenticate(trips.CreateTrip))
	router.GET("/api/trips", middleware.Authenticate(trips.GetTrips))
	router.GET("/api/trips/:tripid", middleware.OptionalAuth(trips.GetTrip))
	router.PUT("/api/trips/:tripid", middleware.Authenticate(trips.UpdateTrip))
	router.DELETE("/api/trips/:tripid", middleware.Authenticate(trips.DeleteTrip))
	router.POST("/api/trips/:tripid/members", middleware.Authenticate(trips.AddMember))
}

func AddSuggestionRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/trips/:tripid/activities", middleware.Authenticate(suggestions.CreateActivity))
	router.GET("/api/trips/:tripid/activities", middleware.OptionalAuth(suggestions.GetActivities))
	router.GET("/api/activities/:activityid", middleware.OptionalAuth(suggestions.GetActivity))
	router.PUT("/api/activities/:activityid", middleware.Authenticate(suggestions.UpdateActivity))
	router.DELETE("/api/activities/:activityid", middleware.Authenticate(suggestions.DeleteActivity))
	router.POST("/api/activities/:activityid/vote", rateLimiter.Limit(middleware.Authenticate(suggestions.VoteActivity)))
}

func AddItineraryRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/trips/:tripid/itineraries", rateLimiter.Limit(middleware.Authenticate(itinerary.GenerateItinerary)))
	router.GET("/api/trips/:tripid/itineraries", middleware.OptionalAuth(itinerary.GetItineraries))
	router.GET("/api/trips/:tripid/itineraries/:itineraryid", middleware.OptionalAuth(itinerary.GetItinerary))
	router.DELETE("/api/trips/:tripid/itineraries/:itineraryid", middleware.Authenticate(itinerary.DeleteItinerary))

	router.PUT("/api/trips/:tripid/itineraries/:itineraryid/days/:daynum/order", middleware.Authenticate(itinerary.ReorderDay))
	router.PUT("/api/trips/:tripid/itineraries/:itineraryid/order", middleware.Authenticate(itinerary.ReorderAllDays))
	router.PUT("/api/trips/:tripid/itineraries/:itineraryid/days/:daynum/lodging", middleware.Authenticate(itinerary.UpdateDayLodging))
	router.POST("/api/trips/:tripid/itineraries/:itineraryid/days/:daynum/activities", middleware.Authenticate(itinerary.AddActivityToDay))

	router.GET("/api/trips/:tripid/itineraries/:itineraryid/print", rateLimiter.Limit(itinerary.PrintItinerary))
}

func AddUtilityRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
	})
}
