package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketgo/internal/dataservice"
	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/utils"

	"golang.org/x/crypto/bcrypt"
)

// Service is the auth/session collaborator: profiles live in the data
// service, sessions are held in memory and identified by opaque tokens.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]models.Profile // token -> signed-in profile
	db       dataservice.Store
}

// NewService creates a new auth service instance
func NewService(db dataservice.Store) *Service {
	return &Service{
		sessions: make(map[string]models.Profile),
		db:       db,
	}
}

// SignUp creates a profile and signs the new user in, returning the
// profile and a session token
func (s *Service) SignUp(ctx context.Context, username, password string) (models.Profile, string, error) {
	if username == "" || password == "" {
		return models.Profile{}, "", fmt.Errorf("service: %w - missing username or password", marketerrors.ErrInvalidInput)
	}

	existing, err := s.db.Select(ctx, dataservice.TableProfiles, dataservice.Filter{"username": username}, nil)
	if err != nil {
		return models.Profile{}, "", fmt.Errorf("service: failed to check username: %w", err)
	}
	if len(existing) > 0 {
		return models.Profile{}, "", fmt.Errorf("service: username %s: %w", username, marketerrors.ErrUsernameTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Profile{}, "", fmt.Errorf("service: failed to hash password: %w", err)
	}

	profile := models.Profile{
		UserID:   utils.GenerateID(),
		Username: username,
	}
	row := dataservice.Row{
		"user_id":       profile.UserID,
		"username":      profile.Username,
		"password_hash": string(hash),
		"created_at":    time.Now().UTC(),
	}
	if err := s.db.Insert(ctx, dataservice.TableProfiles, row); err != nil {
		return models.Profile{}, "", fmt.Errorf("service: failed to create profile: %w", err)
	}

	return profile, s.openSession(profile), nil
}

// SignIn verifies credentials and returns the profile with a fresh token
func (s *Service) SignIn(ctx context.Context, username, password string) (models.Profile, string, error) {
	if username == "" || password == "" {
		return models.Profile{}, "", fmt.Errorf("service: %w - missing username or password", marketerrors.ErrInvalidInput)
	}

	rows, err := s.db.Select(ctx, dataservice.TableProfiles, dataservice.Filter{"username": username}, nil)
	if err != nil {
		return models.Profile{}, "", fmt.Errorf("service: failed to look up profile: %w", err)
	}
	if len(rows) == 0 {
		return models.Profile{}, "", fmt.Errorf("service: %w", marketerrors.ErrInvalidCredentials)
	}

	row := rows[0]
	if err := bcrypt.CompareHashAndPassword([]byte(row.String("password_hash")), []byte(password)); err != nil {
		return models.Profile{}, "", fmt.Errorf("service: %w", marketerrors.ErrInvalidCredentials)
	}

	profile := models.Profile{
		UserID:   row.String("user_id"),
		Username: row.String("username"),
	}
	return profile, s.openSession(profile), nil
}

// SignOut invalidates a session token; unknown tokens are a no-op
func (s *Service) SignOut(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// CurrentUser resolves a session token to the signed-in profile
func (s *Service) CurrentUser(token string) (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.sessions[token]
	return profile, ok
}

func (s *Service) openSession(profile models.Profile) string {
	token := utils.GenerateID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = profile
	return token
}
