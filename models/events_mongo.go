package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoEventRepo struct {
	col *mongo.Collection
}

func NewMongoEventRepository(col *mongo.Collection) EventRepository {
	return &mongoEventRepo{col: col}
}

func (r *mongoEventRepo) GetAll(f EventFilter) ([]Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.TeamID != "" {
		filter["teamIds"] = f.TeamID
	}
	window := bson.M{}
	if f.Start != nil {
		window["$gte"] = *f.Start
	}
	if f.End != nil {
		window["$lte"] = *f.End
	}
	if len(window) > 0 {
		filter["startTime"] = window
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Event{}
	for cur.Next(ctx) {
		var e Event
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

func (r *mongoEventRepo) GetByID(id string) (Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var e Event
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

func (r *mongoEventRepo) GetByGroupID(groupID string) ([]Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"recurringGroupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Event{}
	for cur.Next(ctx) {
		var e Event
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

func (r *mongoEventRepo) Create(e *Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *mongoEventRepo) CreateMany(events []Event) error {
	if len(events) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(events))
	for i := range events {
		docs[i] = events[i]
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *mongoEventRepo) Update(e *Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// whole-document replace so cleared optional fields (voting deadline,
	// recurrence bounds) do not survive from the previous revision
	res, err := r.col.ReplaceOne(ctx, bson.M{"id": e.ID}, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEventRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *mongoEventRepo) DeleteByGroupID(groupID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.col.DeleteMany(ctx, bson.M{"recurringGroupId": groupID})
	return err
}
