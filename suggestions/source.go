package suggestions

import (
	"context"

	"wayfare/db"
	"wayfare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Store resolves activity ids against the activities collection. It is
// the production implementation of the planner's activity source.
type Store struct{}

func (Store) FetchActivity(ctx context.Context, activityID string) (*models.Activity, error) {
	var act models.Activity
	err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": activityID}).Decode(&act)
	if err != nil {
		return nil, err
	}
	return &act, nil
}
