package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func newManager(users *fakeUsers) *Manager {
	return NewManager("test-secret", time.Hour, users, zerolog.Nop())
}

func TestIssueAndResolve(t *testing.T) {
	u := &models.User{ID: "u1", Email: "a@example.com", Role: models.RolePatient}
	users := &fakeUsers{users: map[string]*models.User{"u1": u}}
	m := newManager(users)

	token, exp, err := m.Issue(u)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if d := time.Until(exp); d < 59*time.Minute || d > time.Hour {
		t.Errorf("expiry %v not one TTL away", d)
	}

	id := m.Resolve(context.Background(), token)
	if id == nil || id.UserID != "u1" || id.Role != models.RolePatient {
		t.Fatalf("Resolve() = %+v", id)
	}

	// role is read from the live record, not the token
	u.Role = models.RoleAdmin
	if id := m.Resolve(context.Background(), token); !id.IsAdmin() {
		t.Error("promoted user should resolve as admin")
	}
}

func TestResolveFailsClosed(t *testing.T) {
	u := &models.User{ID: "u1", Role: models.RolePatient}
	users := &fakeUsers{users: map[string]*models.User{"u1": u}}
	m := newManager(users)

	valid, _, _ := m.Issue(u)

	expired := newManager(users)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, _ := expired.Issue(u)

	otherKey, _, _ := NewManager("other-secret", time.Hour, users, zerolog.Nop()).Issue(u)

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).
		SignedString([]byte("test-secret"))

	ghost, _, _ := m.Issue(&models.User{ID: "ghost"})

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"tampered", valid + "x"},
		{"expired", expiredToken},
		{"wrong key", otherKey},
		{"alg none", none},
		{"missing exp", noExp},
		{"unknown user", ghost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id := m.Resolve(context.Background(), tt.token); id != nil {
				t.Errorf("Resolve() = %+v, want nil", id)
			}
		})
	}
}

func TestResolveStoreError(t *testing.T) {
	u := &models.User{ID: "u1"}
	m := newManager(&fakeUsers{users: map[string]*models.User{"u1": u}})
	token, _, _ := m.Issue(u)

	broken := newManager(&fakeUsers{err: errors.New("db down")})
	if id := broken.Resolve(context.Background(), token); id != nil {
		t.Errorf("store failure must resolve to anonymous, got %+v", id)
	}
}
