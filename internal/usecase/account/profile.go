package account

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainUser "github.com/BruksfildServices01/medical-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type UpdateProfileInput struct {
	Name  *string
	Email *string
}

type UpdateProfile struct {
	users       domainUser.Repository
	audit       audit.Recorder
	checkDomain DomainChecker
}

func NewUpdateProfile(users domainUser.Repository, audit audit.Recorder, checkDomain DomainChecker) *UpdateProfile {
	return &UpdateProfile{users: users, audit: audit, checkDomain: checkDomain}
}

// Execute edits the caller's own record; there is no way to target
// another user.
func (uc *UpdateProfile) Execute(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	u, err := uc.users.GetUserByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrUnauthenticated("unauthenticated", "Authentication required.")
	}
	if err != nil {
		return nil, err
	}

	var changed []string

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("missing_fields", "name cannot be empty.")
		}
		u.Name = name
		changed = append(changed, "name")
	}

	if in.Email != nil {
		email := domainUser.NormalizeEmail(*in.Email)
		if email != u.Email {
			if err := validateEmail(email, uc.checkDomain); err != nil {
				return nil, err
			}
			u.Email = email
			changed = append(changed, "email")
		}
	}

	if len(changed) == 0 {
		return u, nil
	}

	if err := uc.users.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errEmailTaken()
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID,
		Action:   audit.ActionProfileUpdated,
		Entity:   audit.EntityUser,
		EntityID: u.ID,
		Metadata: map[string]any{"fields": changed},
	})
	return u, nil
}
