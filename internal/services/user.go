package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SreekarSamrudh/e-shop-central/internal/auth"
	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
	"github.com/SreekarSamrudh/e-shop-central/pkg/logger"
)

// UserService is the identity surface: sign-up, sign-in, and user reads.
type UserService struct {
	db       *db.DB
	metrics  *metrics.AppMetrics
	auth     *auth.Manager
	profiles *ProfileService
}

// NewUserService creates a new user service
func NewUserService(db *db.DB, metrics *metrics.AppMetrics, am *auth.Manager, profiles *ProfileService) *UserService {
	return &UserService{
		db:       db,
		metrics:  metrics,
		auth:     am,
		profiles: profiles,
	}
}

// SignUp creates an account with a hashed password and its default
// profile, and returns a signed session token.
func (s *UserService) SignUp(ctx context.Context, email, password, name, role string) (*models.AuthResponse, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	start := time.Now()
	query := "INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)"
	result, err := s.db.ExecContext(ctx, query, email, hash, name)
	s.metrics.RecordDBQuery(ctx, "INSERT", "users", query, start, err == nil)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	profile, err := s.profiles.CreateProfile(ctx, id, role)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateToken(id, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.FromCtx(ctx).Info("user signed up", "user_id", id, "role", profile.Role)

	return &models.AuthResponse{
		Token:   token,
		User:    &models.User{ID: id, Email: email, Name: name, CreatedAt: time.Now()},
		Profile: profile,
	}, nil
}

// SignIn verifies credentials and returns a signed session token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	start := time.Now()
	query := "SELECT id, email, password_hash, name, created_at FROM users WHERE email = ?"
	var user models.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt,
	)
	s.metrics.RecordDBQuery(ctx, "SELECT", "users", query, start, err == nil || err == sql.ErrNoRows)

	if err == sql.ErrNoRows {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}

	profile, err := s.profiles.GetOrCreateProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateToken(user.ID, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: &user, Profile: profile}, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	start := time.Now()

	query := "SELECT id, email, name, created_at FROM users WHERE id = ?"
	var user models.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.CreatedAt,
	)
	s.metrics.RecordDBQuery(ctx, "SELECT", "users", query, start, err == nil || err == sql.ErrNoRows)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
