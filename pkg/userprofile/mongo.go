package userprofile

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoService stores profiles as documents keyed by user id.
type MongoService struct {
	coll *mongo.Collection
}

// NewMongoService wraps a collection from an already-connected client.
func NewMongoService(coll *mongo.Collection) *MongoService {
	return &MongoService{coll: coll}
}

// Lookup implements Service.
func (s *MongoService) Lookup(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if profile.ExperimentBucketMap == nil {
		profile.ExperimentBucketMap = make(map[string]Decision)
	}
	return &profile, nil
}

// Save implements Service.
func (s *MongoService) Save(ctx context.Context, profile *Profile) error {
	if profile == nil || profile.UserID == "" {
		return errors.Join(ErrInvalidProfile, errors.New("missing user id"))
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": profile.UserID},
		profile,
		options.Replace().SetUpsert(true))
	return err
}
