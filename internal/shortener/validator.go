package shortener

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultLookupTimeout bounds hostname resolution when no timeout is configured.
const DefaultLookupTimeout = 3 * time.Second

// HostResolver resolves a hostname to its addresses. *net.Resolver satisfies it.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Validator turns raw user input into a normalized absolute URL.
//
// The hostname check is a time-of-check guarantee only: a host that resolves
// during validation may be gone by the time the short URL is followed.
type Validator struct {
	resolver HostResolver
	timeout  time.Duration
	syntax   *validator.Validate
}

// NewValidator creates a URL validator. A non-positive timeout falls back to
// DefaultLookupTimeout.
func NewValidator(resolver HostResolver, timeout time.Duration) *Validator {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}

	return &Validator{
		resolver: resolver,
		timeout:  timeout,
		syntax:   validator.New(),
	}
}

// Validate parses rawURL, checks that its host resolves and returns the
// normalized URL. Every rejection wraps ErrInvalidURL.
func (v *Validator) Validate(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)

	if err := v.syntax.Var(rawURL, "required,url"); err != nil {
		return "", fmt.Errorf("%w: %q is not an absolute url", ErrInvalidURL, rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	if err := v.lookup(ctx, host); err != nil {
		return "", err
	}

	return normalize(u), nil
}

func (v *Validator) lookup(ctx context.Context, host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	addrs, err := v.resolver.LookupHost(ctx, host)
	if err != nil {
		return fmt.Errorf("%w: lookup %s: %w", ErrInvalidURL, host, err)
	}

	if len(addrs) == 0 {
		return fmt.Errorf("%w: %s has no addresses", ErrInvalidURL, host)
	}

	return nil
}
