package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

// Repository is the credential store.
//
// GetUserByID and GetUserByEmail return domain.ErrNotFound when no user
// matches; CreateUser and UpdateUser return domain.ErrDuplicate when the
// email is already taken.
type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
