// Package token issues and verifies the signed bearer tokens used to authenticate requests.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// DefaultExpirationTime is the lifetime of an issued token.
const DefaultExpirationTime = time.Hour

// ErrInvalid is returned when a token is malformed, wrongly signed or expired.
var ErrInvalid = errors.New("invalid token")

type (
	// A Payload is the identity embedded in a token.
	Payload map[string]any

	// A Service issues and verifies tokens with a shared secret.
	Service struct {
		secret         []byte
		expirationTime time.Duration
		now            func() time.Time
	}

	// An Option configures a Service.
	Option func(*Service)
)

// WithExpirationTime overrides the DefaultExpirationTime.
func WithExpirationTime(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.expirationTime = d
		}
	}
}

// WithClock overrides the clock used to stamp and check tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService returns a new Service.
func NewService(secret []byte, opts ...Option) *Service {
	s := &Service{
		secret:         secret,
		expirationTime: DefaultExpirationTime,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs the given payload.
// The issue and expiration dates are always stamped by the service.
func (s *Service) Issue(payload Payload) (string, error) {
	now := s.now()

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.expirationTime).Unix()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return token, errors.Wrap(err, "could not sign token")
}

// Verify checks the given token and returns its payload.
func (s *Service) Verify(token string) (Payload, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalid
	}

	return Payload(claims), nil
}

// Email returns the email embedded in the payload.
func (p Payload) Email() string {
	email, _ := p["email"].(string)
	return email
}
