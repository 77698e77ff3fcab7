// Package mongostore implements the repositories on MongoDB. Documents
// use string UUIDs as _id so ids look the same on every backend.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
)

const (
	collUsers        = "users"
	collDoctors      = "doctors"
	collAppointments = "appointments"
	collAuditLogs    = "audit_logs"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collAppointments: {
			{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		collAuditLogs: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for coll, idx := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}
	return nil
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(collUsers)}
}

func (s *Store) Doctors() *DoctorRepository {
	return &DoctorRepository{coll: s.db.Collection(collDoctors)}
}

func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{
		coll:    s.db.Collection(collAppointments),
		users:   s.db.Collection(collUsers),
		doctors: s.db.Collection(collDoctors),
	}
}

func (s *Store) AuditLogs() *AuditStore {
	return &AuditStore{coll: s.db.Collection(collAuditLogs)}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrDuplicate
	default:
		return err
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
