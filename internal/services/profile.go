package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// ProfileService reads and lazily creates per-user profiles. Loyalty
// points are written by checkout only; this service never mutates them.
type ProfileService struct {
	db      *db.DB
	metrics *metrics.AppMetrics
}

// NewProfileService creates a new profile service
func NewProfileService(db *db.DB, metrics *metrics.AppMetrics) *ProfileService {
	return &ProfileService{
		db:      db,
		metrics: metrics,
	}
}

// GetOrCreateProfile returns a user's profile, creating it with defaults
// (customer role, zero points) when missing. A missing profile is never an
// error.
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, err := s.getProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	start := time.Now()
	insertQuery := "INSERT IGNORE INTO profiles (user_id) VALUES (?)"
	_, err = s.db.ExecContext(ctx, insertQuery, userID)
	s.metrics.RecordDBQuery(ctx, "INSERT", "profiles", insertQuery, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.getProfile(ctx, userID)
}

// CreateProfile inserts a profile with an explicit role, used at sign-up.
func (s *ProfileService) CreateProfile(ctx context.Context, userID int64, role string) (*models.Profile, error) {
	if role != models.RoleCustomer && role != models.RoleVendor {
		role = models.RoleCustomer
	}

	start := time.Now()
	query := "INSERT INTO profiles (user_id, role) VALUES (?, ?)"
	_, err := s.db.ExecContext(ctx, query, userID, role)
	s.metrics.RecordDBQuery(ctx, "INSERT", "profiles", query, start, err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.getProfile(ctx, userID)
}

func (s *ProfileService) getProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	start := time.Now()
	query := "SELECT user_id, role, loyalty_points, created_at, updated_at FROM profiles WHERE user_id = ?"
	var p models.Profile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Role, &p.LoyaltyPoints, &p.CreatedAt, &p.UpdatedAt,
	)
	s.metrics.RecordDBQuery(ctx, "SELECT", "profiles", query, start, err == nil || err == sql.ErrNoRows)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}
