package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lunchbot/internal/models"
	"lunchbot/internal/storage"
)

// GetGroup retrieves a group by its normalized name.
func (s *MongoStore) GetGroup(ctx context.Context, name string) (*models.Group, error) {
	var doc groupDoc
	err := s.groups.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return docToGroup(doc), nil
}

// SetGroup creates or overwrites a group, members included.
func (s *MongoStore) SetGroup(ctx context.Context, group *models.Group) error {
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	doc := groupDoc{
		Name:      group.Name,
		Password:  group.Password,
		Members:   group.Members,
		CreatedAt: group.CreatedAt,
	}

	_, err := s.groups.ReplaceOne(ctx,
		bson.M{"_id": group.Name}, doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set group: %w", err)
	}
	return nil
}

// AddMember adds userID to the group's member set. $addToSet gives the
// atomic, idempotent union.
func (s *MongoStore) AddMember(ctx context.Context, name, userID string) error {
	res, err := s.groups.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$addToSet": bson.M{"members": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GroupsWithMember returns every group containing userID, ordered by name.
func (s *MongoStore) GroupsWithMember(ctx context.Context, userID string) ([]models.Group, error) {
	cur, err := s.groups.Find(ctx,
		bson.M{"members": userID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer cur.Close(ctx)

	var groups []models.Group
	for cur.Next(ctx) {
		var doc groupDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode group: %w", err)
		}
		groups = append(groups, *docToGroup(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

func docToGroup(doc groupDoc) *models.Group {
	return &models.Group{
		Name:      doc.Name,
		Password:  doc.Password,
		Members:   doc.Members,
		CreatedAt: doc.CreatedAt,
	}
}
