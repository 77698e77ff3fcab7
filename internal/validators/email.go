package validators

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const domainLookupTimeout = 3 * time.Second

// std validates values outside request binding with the same built-in
// rules gin applies to request DTOs.
var std = validator.New()

// IsEmail applies the validator "email" rule, the grammar doctor contact
// emails are bound with.
func IsEmail(email string) bool {
	return std.Var(email, "required,email") == nil
}

// IsEmailDomainValid reports whether the domain of email resolves to a
// mail exchanger or, failing that, to any address.
func IsEmailDomainValid(email string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), domainLookupTimeout)
	defer cancel()
	return emailDomainResolves(ctx, net.DefaultResolver, email)
}

type domainResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

func emailDomainResolves(ctx context.Context, r domainResolver, email string) bool {
	_, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return false
	}

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if addrs, err := r.LookupIPAddr(ctx, domain); err == nil && len(addrs) > 0 {
		return true
	}
	return false
}
