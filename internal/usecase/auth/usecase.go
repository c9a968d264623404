package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	domain "feedback-service/internal/domain/user"
	apperrors "feedback-service/pkg/errors"
	"feedback-service/pkg/logger"
)

// Field names accepted by Register.
const (
	FieldUsername         = "username"
	FieldPassword         = "password"
	FieldRepeatedPassword = "repeated_password"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
)

// RequiredFields lists the registration fields that must be present and non-empty.
// repeated_password is checked by the form layer and never stored.
var RequiredFields = []string{FieldUsername, FieldPassword, FieldEmail, FieldFirstName, FieldLastName}

// Repository defines the user store operations needed for authentication.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (domain.CreateOutcome, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// PasswordHasher hashes passwords and verifies them against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// fallbackDecoyHash is a well-formed cost-10 bcrypt hash used when the
// decoy cannot be computed with the configured hasher.
const fallbackDecoyHash = "$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga"

// Service implements registration and authentication on top of a user store and a hasher.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	log    *zap.Logger

	decoyOnce sync.Once
	decoyHash string
}

// New creates a new auth Service.
func New(repo Repository, hasher PasswordHasher, log *zap.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, log: log}
}

// missingFields returns the required fields that are absent or empty, in declaration order.
func missingFields(fields map[string]string) []string {
	var missing []string
	for _, name := range RequiredFields {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// decoy returns a hash that unknown usernames are checked against,
// so a miss costs the same as a wrong password.
func (s *Service) decoy() string {
	s.decoyOnce.Do(func() {
		h, err := s.hasher.Hash("decoy-password-never-matches")
		if err != nil || h == "" {
			s.log.Warn("failed to compute decoy hash, using fallback", zap.Error(err))
			h = fallbackDecoyHash
		}
		s.decoyHash = h
	})
	return s.decoyHash
}

// Register validates presence of the required fields, hashes the password and stores a new user.
// It fails with MissingFieldError before touching the store, and with
// DuplicateIdentityError when the username or email is already taken.
func (s *Service) Register(ctx context.Context, fields map[string]string) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)

	if missing := missingFields(fields); len(missing) > 0 {
		log.Warn("registration rejected", zap.Strings("missing", missing))
		return nil, apperrors.NewMissingFieldError(missing...)
	}

	hash, err := s.hasher.Hash(fields[FieldPassword])
	if err != nil {
		log.Warn("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &domain.User{
		Username:     fields[FieldUsername],
		PasswordHash: hash,
		Email:        fields[FieldEmail],
		FirstName:    fields[FieldFirstName],
		LastName:     fields[FieldLastName],
	}

	outcome, err := s.repo.Create(ctx, u)
	if err != nil {
		log.Error("failed to register user", zap.String("username", u.Username), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to register user", err)
	}
	if outcome == domain.CreateConflict {
		log.Warn("duplicate username or email", zap.String("username", u.Username))
		return nil, apperrors.NewDuplicateIdentityError()
	}

	log.Info("user registered", zap.String("username", u.Username))
	return u, nil
}

// Authenticate returns the user when password matches the stored hash.
// An unknown username and a wrong password both yield (nil, nil); an error
// is returned only when the store itself fails.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		var notFound *apperrors.NotFoundError
		if !errors.As(err, &notFound) {
			log.Error("failed to load user for authentication", zap.Error(err))
			return nil, fmt.Errorf("authenticate: %w", err)
		}
		u = nil
	}

	hash := s.decoy()
	if u != nil {
		hash = u.PasswordHash
	}
	match := s.hasher.Check(password, hash)

	// Both negative outcomes share one log line
	if u == nil || !match {
		log.Info("authentication failed", zap.String("username", username))
		return nil, nil
	}

	log.Info("user authenticated", zap.String("username", username))
	return u, nil
}
