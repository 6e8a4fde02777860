package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lunchbot/internal/models"
	"lunchbot/internal/storage"
)

// AddEvent persists a new event under the given group.
// Generates the ID and CreatedAt if not set.
func (s *MongoStore) AddEvent(ctx context.Context, group string, event *models.Event) (string, error) {
	if _, err := s.GetGroup(ctx, group); err != nil {
		return "", err
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	event.Group = group

	doc := eventDoc{
		ID:          event.ID,
		Group:       group,
		CreatorID:   event.CreatorID,
		CreatorName: event.CreatorName,
		Start:       event.Start,
		End:         event.End,
		Location:    event.Location,
		CreatedAt:   event.CreatedAt,
	}

	if _, err := s.events.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	return event.ID, nil
}

// ListEvents returns the group's events per the given options. Range
// filtering and ordering happen server-side.
func (s *MongoStore) ListEvents(ctx context.Context, group string, opts storage.ListOptions) ([]models.Event, error) {
	filter := bson.M{"group": group}
	if opts.StartFrom != nil || opts.StartTo != nil {
		rng := bson.M{}
		if opts.StartFrom != nil {
			rng["$gte"] = *opts.StartFrom
		}
		if opts.StartTo != nil {
			rng["$lte"] = *opts.StartTo
		}
		filter["start"] = rng
	}

	sortKey := "start"
	if opts.OrderBy == storage.OrderByCreated {
		sortKey = "created_at"
	}

	cur, err := s.events.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: sortKey, Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer cur.Close(ctx)

	var events []models.Event
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		events = append(events, models.Event{
			ID:          doc.ID,
			Group:       doc.Group,
			CreatorID:   doc.CreatorID,
			CreatorName: doc.CreatorName,
			Start:       doc.Start,
			End:         doc.End,
			Location:    doc.Location,
			CreatedAt:   doc.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// DeleteEvent removes one event by ID.
func (s *MongoStore) DeleteEvent(ctx context.Context, group, id string) error {
	res, err := s.events.DeleteOne(ctx, bson.M{"_id": id, "group": group})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
