// Package auth manages local accounts, the current session and each user's
// saved personality results. All state lives in a store.Bucket as three
// JSON records, each read and rewritten whole on every call.
package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mindspark/internal/store"
)

// Bucket keys.
const (
	UsersKey   = "mindspark_users"
	ResultsKey = "mindspark_results"
	SessionKey = "mindspark_session"
)

var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")
	ErrMissingFields      = errors.New("email and password are required")
)

// Session is the public view of the logged-in user.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// user is a row of the users table.
type user struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

func (u user) session() Session {
	return Session{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Service implements signup, login and result history over a Bucket.
type Service struct {
	bucket   store.Bucket
	now      func() time.Time
	newID    func() string
	hashCost int
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp saved results.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDFunc overrides the generator for user and result IDs.
func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithHashCost sets the bcrypt cost for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service backed by bucket.
func NewService(bucket store.Bucket, opts ...Option) *Service {
	s := &Service{
		bucket:   bucket,
		now:      time.Now,
		newID:    uuid.NewString,
		hashCost: defaultHashCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Signup creates a user and logs them in. Name and email are trimmed; an
// email already registered, compared exactly after trimming, is rejected
// with ErrDuplicateUser.
func (s *Service) Signup(ctx context.Context, name, email, password string) (Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Session{}, ErrNameRequired
	}
	if email == "" || password == "" {
		return Session{}, ErrMissingFields
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return Session{}, ErrDuplicateUser
		}
	}

	hash, err := hashPassword(password, s.hashCost)
	if err != nil {
		return Session{}, err
	}

	u := user{ID: s.newID(), Name: name, Email: email, PasswordHash: hash}
	users = append(users, u)
	if err := s.saveJSON(ctx, UsersKey, users); err != nil {
		return Session{}, err
	}

	sess := u.session()
	if err := s.saveJSON(ctx, SessionKey, sess); err != nil {
		return Session{}, err
	}

	s.logger.Info("user signed up", "user_id", u.ID)
	return sess, nil
}

// Login checks credentials and establishes a session. The email must match
// a registered one exactly after trimming; case is significant.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return Session{}, err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if !checkPassword(u.PasswordHash, password) {
			break
		}
		sess := u.session()
		if err := s.saveJSON(ctx, SessionKey, sess); err != nil {
			return Session{}, err
		}
		s.logger.Info("user logged in", "user_id", u.ID)
		return sess, nil
	}

	s.logger.Info("login rejected")
	return Session{}, ErrInvalidCredentials
}

// Logout clears the session. Logging out twice is fine.
func (s *Service) Logout(ctx context.Context) error {
	return s.bucket.Delete(ctx, SessionKey)
}

// CurrentUser returns the stored session, or nil when logged out.
// An unreadable session record counts as logged out.
func (s *Service) CurrentUser(ctx context.Context) (*Session, error) {
	var sess Session
	found, err := s.loadJSON(ctx, SessionKey, &sess)
	if err != nil {
		var decErr *decodeError
		if errors.As(err, &decErr) {
			s.logger.Warn("discarding unreadable session", "err", err)
			return nil, nil
		}
		return nil, err
	}
	if !found || sess.ID == "" {
		return nil, nil
	}
	return &sess, nil
}

func (s *Service) loadUsers(ctx context.Context) ([]user, error) {
	var users []user
	if _, err := s.loadJSON(ctx, UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}
