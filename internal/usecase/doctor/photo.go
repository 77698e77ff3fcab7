package doctor

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainDoctor "github.com/BruksfildServices01/medical-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/imaging"
	"github.com/BruksfildServices01/medical-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type UploadPhoto struct {
	repo    domainDoctor.Repository
	store   storage.ObjectStore
	audit   audit.Recorder
	maxEdge int
}

// NewUploadPhoto builds the use case. A nil store disables uploads.
func NewUploadPhoto(repo domainDoctor.Repository, store storage.ObjectStore, audit audit.Recorder) *UploadPhoto {
	return &UploadPhoto{
		repo:    repo,
		store:   store,
		audit:   audit,
		maxEdge: imaging.DefaultMaxEdge,
	}
}

func (uc *UploadPhoto) Execute(ctx context.Context, actorID, id string, photo io.Reader) (*models.Doctor, error) {
	if uc.store == nil {
		return nil, httperr.ErrUnavailable("storage_disabled", "Photo storage is not configured.")
	}

	d, err := load(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	body, err := imaging.ToWebP(photo, uc.maxEdge)
	if errors.Is(err, imaging.ErrUnsupportedImage) {
		return nil, httperr.ErrValidation("invalid_image", "photo must be a JPEG, PNG or WebP image.")
	}
	if err != nil {
		return nil, err
	}

	key := "doctors/" + d.ID + "/" + uuid.NewString() + ".webp"
	url, err := uc.store.Put(ctx, key, imaging.ContentType, body)
	if err != nil {
		return nil, err
	}

	d.PhotoURL = url
	if err := uc.repo.UpdateDoctor(ctx, d); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errDoctorNotFound()
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   audit.ActionDoctorPhoto,
		Entity:   audit.EntityDoctor,
		EntityID: d.ID,
		Metadata: map[string]any{"key": key, "bytes": len(body)},
	})
	return d, nil
}
