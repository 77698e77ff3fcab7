package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainUser "github.com/BruksfildServices01/medical-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
	"github.com/BruksfildServices01/medical-scheduler/internal/validators"
)

const MinPasswordLength = 6

// DomainChecker reports whether an email's domain can receive mail.
type DomainChecker func(email string) bool

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

type Register struct {
	users       domainUser.Repository
	audit       audit.Recorder
	checkDomain DomainChecker
}

// NewRegister builds the use case. checkDomain may be nil to skip the
// DNS lookup.
func NewRegister(users domainUser.Repository, audit audit.Recorder, checkDomain DomainChecker) *Register {
	return &Register{users: users, audit: audit, checkDomain: checkDomain}
}

func errEmailTaken() error {
	return httperr.ErrConflict("email_already_registered", "Email is already registered.")
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {

	// --------------------------------------------------
	// 1. Validate
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	email := domainUser.NormalizeEmail(in.Email)

	if name == "" || email == "" || in.Password == "" {
		return nil, httperr.ErrValidation("missing_fields", "name, email and password are required.")
	}
	if err := validateEmail(email, uc.checkDomain); err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, httperr.ErrValidation("weak_password", "password must be at least 6 characters.")
	}

	role := in.Role
	if role == "" {
		role = models.RolePatient
	}

	// --------------------------------------------------
	// 2. Uniqueness (the unique index is the final word)
	// --------------------------------------------------
	if _, err := uc.users.GetUserByEmail(ctx, email); err == nil {
		return nil, errEmailTaken()
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}

	if err := uc.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errEmailTaken()
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   audit.EntityUser,
		EntityID: u.ID,
		Metadata: map[string]any{"role": u.Role},
	})
	return u, nil
}

func validateEmail(email string, checkDomain DomainChecker) error {
	if !validators.IsEmail(email) {
		return httperr.ErrValidation("invalid_email", "email is not a valid address.")
	}
	if checkDomain != nil && !checkDomain(email) {
		return httperr.ErrValidation("invalid_email_domain", "email domain does not accept mail.")
	}
	return nil
}
