package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type AuditStore struct {
	coll *mongo.Collection
}

func (s *AuditStore) Save(ctx context.Context, log *models.AuditLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now()
	}
	_, err := s.coll.InsertOne(ctx, log)
	return err
}

func (s *AuditStore) List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	filter := bson.M{}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}
	if window := dateRange(f.From, f.To); len(window) > 0 {
		filter["createdAt"] = window
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(f.Offset())).
		SetLimit(int64(f.Limit))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := cur.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

var _ audit.Store = (*AuditStore)(nil)
