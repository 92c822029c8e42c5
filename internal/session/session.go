// Package session owns the bearer token of the signed-in user.
//
// A Session is created once at startup, initialised from persistent
// storage, and injected wherever a token or the user's email is needed.
// Every protected view re-runs Check on mount; nothing about a previous
// check is remembered beyond the token itself.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

var (
	// ErrAuthRequired means no token is stored.
	ErrAuthRequired = errors.New("authentication required")

	// ErrSessionExpired means the token expired, could not be decoded,
	// or was rejected by the server.
	ErrSessionExpired = errors.New("session expired")

	// ErrMalformedToken is returned by Decode for structurally invalid tokens.
	ErrMalformedToken = errors.New("malformed token")
)

// Store persists the single token string.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Claims are the parts of the token the client reads.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Decode reads the token claims without verifying the signature.
func Decode(token string) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	return claims, nil
}

// Status is the outcome of a session check.
type Status int

const (
	StatusValid Status = iota
	StatusMissing
	StatusExpired
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusMissing:
		return "missing"
	case StatusExpired:
		return "expired"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Result is returned by Check.
type Result struct {
	Status Status
	Email  string
	// Err is ErrAuthRequired or ErrSessionExpired when the session is not valid.
	Err error
}

// Valid reports whether task content may be rendered.
func (r Result) Valid() bool {
	return r.Status == StatusValid
}

// Session is the process-wide session context.
type Session struct {
	mu    sync.RWMutex
	store Store
	now   func() time.Time
	log   logrus.FieldLogger

	token string
	email string
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

// New creates a Session backed by store. Call Init before use.
func New(store Store, opts ...Option) *Session {
	s := &Session{
		store: store,
		now:   time.Now,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init reads the stored token once and validates it.
func (s *Session) Init() Result {
	token, err := s.store.Load()
	if err != nil {
		s.log.WithError(err).Warn("failed to read stored token")
		token = ""
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return s.Check()
}

// Check validates the current token. Expired and malformed tokens are
// cleared from memory and storage.
func (s *Session) Check() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return Result{Status: StatusMissing, Err: ErrAuthRequired}
	}

	claims, err := Decode(s.token)
	if err != nil {
		s.log.WithError(err).Warn("stored token is malformed")
		s.clearLocked()
		return Result{Status: StatusMalformed, Err: ErrSessionExpired}
	}

	now := s.now().Unix()
	if exp := claims.ExpiresAt.Unix(); exp <= now {
		s.log.WithFields(logrus.Fields{"exp": exp, "now": now}).Info("token expired")
		s.clearLocked()
		return Result{Status: StatusExpired, Err: ErrSessionExpired}
	}

	s.email = claims.Email
	return Result{Status: StatusValid, Email: claims.Email}
}

// Establish validates and persists a freshly issued token.
func (s *Session) Establish(token string) (Result, error) {
	claims, err := Decode(token)
	if err != nil {
		return Result{Status: StatusMalformed, Err: ErrSessionExpired}, err
	}
	if claims.ExpiresAt.Unix() <= s.now().Unix() {
		return Result{Status: StatusExpired, Err: ErrSessionExpired}, ErrSessionExpired
	}

	if err := s.store.Save(token); err != nil {
		return Result{}, fmt.Errorf("failed to store token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.email = claims.Email
	s.mu.Unlock()

	s.log.WithField("email", claims.Email).Info("session established")
	return Result{Status: StatusValid, Email: claims.Email}, nil
}

// Invalidate drops the token from memory and storage.
func (s *Session) Invalidate(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		s.log.WithField("reason", reason).Info("session invalidated")
	}
	s.clearLocked()
}

func (s *Session) clearLocked() {
	s.token = ""
	s.email = ""
	if err := s.store.Clear(); err != nil {
		s.log.WithError(err).Warn("failed to clear stored token")
	}
}

// Token returns the current bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Email returns the email of the last valid check.
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}
