package account

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainUser "github.com/BruksfildServices01/medical-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type Login struct {
	users domainUser.Repository
}

func NewLogin(users domainUser.Repository) *Login {
	return &Login{users: users}
}

// Execute never says which half of the credentials was wrong.
func (uc *Login) Execute(ctx context.Context, email, password string) (*models.User, error) {
	invalid := httperr.ErrUnauthenticated("invalid_credentials", "Invalid email or password.")

	email = domainUser.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, httperr.ErrValidation("missing_fields", "email and password are required.")
	}

	u, err := uc.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, invalid
	}
	return u, nil
}
