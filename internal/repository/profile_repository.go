package repository

import (
	"context"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/google/uuid"
)

// ProfileRepository persists UserProfile aggregates. Username and ID are both
// unique keys; Add reports domain.ErrProfileAlreadyExists on a collision and
// lookups report domain.ErrProfileNotFound on a miss.
type ProfileRepository interface {
	Add(ctx context.Context, profile *domain.UserProfile) error
	GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
	GetAll(ctx context.Context) ([]*domain.UserProfile, error)
	Update(ctx context.Context, profile *domain.UserProfile) error
	DeleteByUsername(ctx context.Context, username string) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}
