package account

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type fakeUsers struct {
	byID map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.User{}}
}

func (f *fakeUsers) findEmail(email string) *models.User {
	for _, u := range f.byID {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (f *fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	if f.findEmail(u.Email) != nil {
		return domain.ErrDuplicate
	}
	u.ID = models.NewID()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u := f.findEmail(email)
	if u == nil {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, u *models.User) error {
	if other := f.findEmail(u.Email); other != nil && other.ID != u.ID {
		return domain.ErrDuplicate
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

type nopAudit struct{}

func (nopAudit) Dispatch(audit.Event) {}

func register(t *testing.T, users *fakeUsers, name, email string) *models.User {
	t.Helper()
	u, err := NewRegister(users, nopAudit{}, nil).Execute(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUsers()
	u := register(t, users, "Alice", " Alice@Example.com ")

	if u.Email != "alice@example.com" || u.Role != models.RolePatient {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.Password == "secret123" {
		t.Error("password must be hashed")
	}

	got, err := NewLogin(users).Execute(context.Background(), "alice@example.com", "secret123")
	if err != nil || got.ID != u.ID {
		t.Fatalf("login failed: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	register(t, users, "Alice", "alice@example.com")

	_, err := NewRegister(users, nopAudit{}, nil).Execute(context.Background(), RegisterInput{
		Name: "Other", Email: "ALICE@example.com", Password: "secret123",
	})
	if httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("got %v, want conflict", err)
	}
	if len(users.byID) != 1 {
		t.Errorf("expected a single user, got %d", len(users.byID))
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		in   RegisterInput
		code string
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "secret123"}, "missing_fields"},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "secret123"}, "invalid_email"},
		{"display name", RegisterInput{Name: "A", Email: "Ann <a@example.com>", Password: "secret123"}, "invalid_email"},
		{"hyphen-led host", RegisterInput{Name: "A", Email: "a@-example.com", Password: "secret123"}, "invalid_email"},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "123"}, "weak_password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegister(newFakeUsers(), nopAudit{}, nil).Execute(context.Background(), tc.in)
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("got %v, want %s", err, tc.code)
			}
		})
	}
}

func TestRegisterDomainCheck(t *testing.T) {
	reject := func(string) bool { return false }

	_, err := NewRegister(newFakeUsers(), nopAudit{}, reject).Execute(context.Background(), RegisterInput{
		Name: "A", Email: "a@example.com", Password: "secret123",
	})
	if !httperr.IsBusiness(err, "invalid_email_domain") {
		t.Fatalf("got %v, want invalid_email_domain", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newFakeUsers()
	register(t, users, "Alice", "alice@example.com")

	for _, tc := range []struct{ email, password string }{
		{"alice@example.com", "wrong-password"},
		{"nobody@example.com", "secret123"},
	} {
		_, err := NewLogin(users).Execute(context.Background(), tc.email, tc.password)
		if !httperr.IsBusiness(err, "invalid_credentials") || httperr.KindOf(err) != httperr.KindUnauthenticated {
			t.Errorf("%s: got %v, want invalid_credentials", tc.email, err)
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	users := newFakeUsers()
	alice := register(t, users, "Alice", "alice@example.com")
	register(t, users, "Bob", "bob@example.com")

	uc := NewUpdateProfile(users, nopAudit{}, nil)

	name := "Alice Liddell"
	u, err := uc.Execute(context.Background(), alice.ID, UpdateProfileInput{Name: &name})
	if err != nil || u.Name != name {
		t.Fatalf("rename failed: %v", err)
	}

	taken := "bob@example.com"
	_, err = uc.Execute(context.Background(), alice.ID, UpdateProfileInput{Email: &taken})
	if httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("got %v, want conflict", err)
	}
	if users.byID[alice.ID].Email != "alice@example.com" {
		t.Error("email must not change on conflict")
	}
}
