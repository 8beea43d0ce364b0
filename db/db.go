package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	TripsCollection      *mongo.Collection
	ActivitiesCollection *mongo.Collection
	ItineraryCollection  *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("wayfaredb").Collection("users")
	TripsCollection = Client.Database("wayfaredb").Collection("trips")
	ActivitiesCollection = Client.Database("wayfaredb").Collection("activities")
	ItineraryCollection = Client.Database("wayfaredb").Collection("itineraries")
}
