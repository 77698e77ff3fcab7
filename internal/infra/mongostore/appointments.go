package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type AppointmentRepository struct {
	coll    *mongo.Collection
	users   *mongo.Collection
	doctors *mongo.Collection
}

// --------------------------------------------------
// Appointment (CRUD)
// --------------------------------------------------

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if ap.ID == "" {
		ap.ID = models.NewID()
	}
	ap.Date = ap.Date.UTC()
	ap.CreatedAt = now()
	ap.UpdatedAt = ap.CreatedAt

	_, err := r.coll.InsertOne(ctx, ap)
	return translate(err)
}

func (r *AppointmentRepository) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ap); err != nil {
		return nil, translate(err)
	}

	apps := []models.Appointment{ap}
	if err := r.populate(ctx, apps); err != nil {
		return nil, err
	}
	return &apps[0], nil
}

func (r *AppointmentRepository) ListAppointments(ctx context.Context, f appointment.ListFilter) ([]models.Appointment, error) {
	filter := bson.M{}
	if f.PatientID != "" {
		filter["patient"] = f.PatientID
	}
	if f.DoctorID != "" {
		filter["doctor"] = f.DoctorID
	}
	if window := dateRange(f.From, f.To); len(window) > 0 {
		filter["date"] = window
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var apps []models.Appointment
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	if err := r.populate(ctx, apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.Date = ap.Date.UTC()
	ap.UpdatedAt = now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ap.ID}, ap)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// populate attaches patient and doctor documents, like a mongoose populate.
func (r *AppointmentRepository) populate(ctx context.Context, apps []models.Appointment) error {
	if len(apps) == 0 {
		return nil
	}

	patientIDs := make([]string, 0, len(apps))
	doctorIDs := make([]string, 0, len(apps))
	for _, ap := range apps {
		patientIDs = append(patientIDs, ap.PatientID)
		doctorIDs = append(doctorIDs, ap.DoctorID)
	}

	patients, err := (&UserRepository{coll: r.users}).findByIDs(ctx, patientIDs)
	if err != nil {
		return err
	}
	doctors, err := (&DoctorRepository{coll: r.doctors}).findByIDs(ctx, doctorIDs)
	if err != nil {
		return err
	}

	for i := range apps {
		apps[i].Patient = patients[apps[i].PatientID]
		apps[i].Doctor = doctors[apps[i].DoctorID]
	}
	return nil
}

// --------------------------------------------------
// Doctor references
// --------------------------------------------------

func (r *AppointmentRepository) ListBookedTimes(ctx context.Context, doctorID string, start, end time.Time) ([]time.Time, error) {
	filter := bson.M{
		"doctor": doctorID,
		"status": bson.M{"$ne": string(appointment.StatusCancelled)},
		"date":   dateRange(&start, &end),
	}
	return r.dates(ctx, filter)
}

func (r *AppointmentRepository) CountAppointmentsForDoctor(ctx context.Context, doctorID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"doctor": doctorID})
}

// --------------------------------------------------
// Reporting
// --------------------------------------------------

func (r *AppointmentRepository) CountAppointments(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *AppointmentRepository) CountAppointmentsBetween(ctx context.Context, start, end time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"date": dateRange(&start, &end)})
}

func (r *AppointmentRepository) CountAppointmentsByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *AppointmentRepository) ListAppointmentDatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	return r.dates(ctx, bson.M{"date": dateRange(&start, &end)})
}

func (r *AppointmentRepository) dates(ctx context.Context, filter bson.M) ([]time.Time, error) {
	opts := options.Find().
		SetProjection(bson.M{"date": 1}).
		SetSort(bson.D{{Key: "date", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Date time.Time `bson:"date"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Date)
	}
	return out, nil
}

func dateRange(from, to *time.Time) bson.M {
	m := bson.M{}
	if from != nil {
		m["$gte"] = from.UTC()
	}
	if to != nil {
		m["$lt"] = to.UTC()
	}
	return m
}

var _ appointment.Store = (*AppointmentRepository)(nil)
