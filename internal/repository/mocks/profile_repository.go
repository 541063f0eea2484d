// Package mocks provides testify mocks for repository interfaces.
package mocks

import (
	"context"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProfileRepository struct {
	mock.Mock
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)

func (m *ProfileRepository) Add(ctx context.Context, profile *domain.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *ProfileRepository) GetAll(ctx context.Context) ([]*domain.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserProfile), args.Error(1)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) DeleteByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *ProfileRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
