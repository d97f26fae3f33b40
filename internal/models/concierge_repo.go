package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureConciergeIndexes creates the indexes the session queries rely on.
func (mdb *MongodbRepo) EnsureConciergeIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ConciergeColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "updated_at", Value: -1},
			},
			Options: options.Index().SetName("user_updated_at_idx"),
		},
	}
	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	favs, err := mdb.GetCollection(FavouriteColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	_, err = favs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("error creating favourites index: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateSession(ctx context.Context, session *ConciergeSession) (*ConciergeSession, error) {
	col, err := mdb.GetCollection(ConciergeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	if session.Messages == nil {
		session.Messages = []ConciergeMessage{}
	}
	session.MessageCount = len(session.Messages)

	if _, err := col.InsertOne(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to insert concierge session: %w", err)
	}
	return session, nil
}

func (mdb *MongodbRepo) ListSessions(ctx context.Context, userID string) ([]*ConciergeSession, error) {
	col, err := mdb.GetCollection(ConciergeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetProjection(bson.M{"messages": 0})

	cursor, err := col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding concierge sessions: %v", err)
	}
	defer cursor.Close(ctx)

	sessions := []*ConciergeSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding concierge sessions: %v", err)
	}
	return sessions, nil
}

func (mdb *MongodbRepo) GetSession(ctx context.Context, id primitive.ObjectID) (*ConciergeSession, error) {
	col, err := mdb.GetCollection(ConciergeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var session ConciergeSession
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding concierge session: %v", err)
	}
	return &session, nil
}

func (mdb *MongodbRepo) UpdateSession(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*ConciergeSession, error) {
	col, err := mdb.GetCollection(ConciergeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var session ConciergeSession
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating concierge session: %v", err)
	}
	return &session, nil
}

func (mdb *MongodbRepo) AppendMessages(ctx context.Context, id primitive.ObjectID, messages ...ConciergeMessage) (*ConciergeSession, error) {
	col, err := mdb.GetCollection(ConciergeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": messages}},
		"$inc":  bson.M{"message_count": len(messages)},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var session ConciergeSession
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error appending concierge messages: %v", err)
	}
	return &session, nil
}
