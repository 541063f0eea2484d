package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type profileRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*domain.UserProfile
	byUsername map[string]uuid.UUID
	tracer     trace.Tracer
}

// NewProfileRepository returns a process-local store. Profiles are cloned on
// the way in and on the way out.
func NewProfileRepository(tracer trace.Tracer) repository.ProfileRepository {
	return &profileRepository{
		byID:       make(map[uuid.UUID]*domain.UserProfile),
		byUsername: make(map[string]uuid.UUID),
		tracer:     tracer,
	}
}

func (r *profileRepository) Add(ctx context.Context, profile *domain.UserProfile) error {
	_, span := r.tracer.Start(ctx, "ProfileRepository.Add")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[profile.Username]; ok {
		return domain.ErrProfileAlreadyExists
	}
	if _, ok := r.byID[profile.ID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	r.byID[profile.ID] = profile.Clone()
	r.byUsername[profile.Username] = profile.ID
	return nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	_, span := r.tracer.Start(ctx, "ProfileRepository.GetByUsername")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	_, span := r.tracer.Start(ctx, "ProfileRepository.GetByID")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile.Clone(), nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]*domain.UserProfile, error) {
	_, span := r.tracer.Start(ctx, "ProfileRepository.GetAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*domain.UserProfile, 0, len(r.byID))
	for _, p := range r.byID {
		profiles = append(profiles, p.Clone())
	}
	// map order is random; keep listings stable
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].CreatedAt.Equal(profiles[j].CreatedAt) {
			return profiles[i].Username < profiles[j].Username
		}
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	_, span := r.tracer.Start(ctx, "ProfileRepository.Update")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[profile.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	if current.Username != profile.Username {
		if _, taken := r.byUsername[profile.Username]; taken {
			return domain.ErrProfileAlreadyExists
		}
		delete(r.byUsername, current.Username)
		r.byUsername[profile.Username] = profile.ID
	}
	r.byID[profile.ID] = profile.Clone()
	return nil
}

func (r *profileRepository) DeleteByUsername(ctx context.Context, username string) (bool, error) {
	_, span := r.tracer.Start(ctx, "ProfileRepository.DeleteByUsername")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUsername[username]
	if !ok {
		return false, nil
	}
	delete(r.byUsername, username)
	delete(r.byID, id)
	return true, nil
}

func (r *profileRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, span := r.tracer.Start(ctx, "ProfileRepository.DeleteByID")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byUsername, profile.Username)
	delete(r.byID, id)
	return true, nil
}
