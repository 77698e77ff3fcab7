// Package session issues and resolves the signed session token carried in
// the "token" cookie.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

const CookieName = "token"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the resolved caller. Role always comes from the stored user.
type Identity struct {
	UserID string
	Role   models.Role
	User   *models.User
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	users  UserFinder
	logger zerolog.Logger
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, users UserFinder, logger zerolog.Logger) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		users:  users,
		logger: logger.With().Str("component", "session").Logger(),
		now:    time.Now,
	}
}

// TTL is the single lifetime used for both the token and its cookie.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Issue(u *models.User) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	claims := Claims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Parse verifies signature, algorithm and expiry.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Resolve turns a raw token into an Identity. It fails closed: any
// problem with the token or the user lookup yields nil.
func (m *Manager) Resolve(ctx context.Context, raw string) *Identity {
	if raw == "" {
		return nil
	}

	claims, err := m.Parse(raw)
	if err != nil {
		m.logger.Debug().Err(err).Msg("rejected session token")
		return nil
	}

	u, err := m.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.logger.Error().Err(err).Str("user_id", claims.Subject).Msg("session user lookup failed")
		}
		return nil
	}

	return &Identity{
		UserID: u.ID,
		Role:   u.Role,
		User:   u,
	}
}
