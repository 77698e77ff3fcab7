package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type DoctorRepository struct {
	coll *mongo.Collection
}

func (r *DoctorRepository) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	if d.ID == "" {
		d.ID = models.NewID()
	}
	d.CreatedAt = now()
	d.UpdatedAt = d.CreatedAt

	_, err := r.coll.InsertOne(ctx, d)
	return translate(err)
}

func (r *DoctorRepository) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *DoctorRepository) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []models.Doctor
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DoctorRepository) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	d.UpdatedAt = now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DoctorRepository) DeleteDoctor(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DoctorRepository) CountDoctors(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *DoctorRepository) findByIDs(ctx context.Context, ids []string) (map[string]*models.Doctor, error) {
	out := make(map[string]*models.Doctor, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []models.Doctor
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for i := range docs {
		out[docs[i].ID] = &docs[i]
	}
	return out, nil
}

var _ doctor.Repository = (*DoctorRepository)(nil)
