package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/trace"
)

const uniqueViolation = "23505"

// Schema creates the profile table. The aggregate is stored as a JSONB
// document next to the two unique keys.
const Schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
	id         UUID PRIMARY KEY,
	username   TEXT NOT NULL UNIQUE,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_user_profiles_created_at ON user_profiles (created_at);
`

type profileRow struct {
	ID       uuid.UUID `db:"id"`
	Username string    `db:"username"`
	Data     []byte    `db:"data"`
}

func (row profileRow) toDomain() (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := json.Unmarshal(row.Data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", row.ID, err)
	}
	return &profile, nil
}

type profileRepository struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

func NewProfileRepository(db *sqlx.DB, tracer trace.Tracer) repository.ProfileRepository {
	return &profileRepository{db: db, tracer: tracer}
}

// EnsureSchema applies Schema. It is safe to call on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (r *profileRepository) Add(ctx context.Context, profile *domain.UserProfile) error {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.Add")
	defer span.End()

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_profiles (id, username, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query, profile.ID, profile.Username, data, profile.CreatedAt, profile.UpdatedAt)
	return mapWriteError(err)
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.GetByUsername")
	defer span.End()

	return r.getOne(ctx, `SELECT id, username, data FROM user_profiles WHERE username = $1`, username)
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.GetByID")
	defer span.End()

	return r.getOne(ctx, `SELECT id, username, data FROM user_profiles WHERE id = $1`, id)
}

func (r *profileRepository) getOne(ctx context.Context, query string, arg any) (*domain.UserProfile, error) {
	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toDomain()
}

func (r *profileRepository) GetAll(ctx context.Context) ([]*domain.UserProfile, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.GetAll")
	defer span.End()

	var rows []profileRow
	query := `SELECT id, username, data FROM user_profiles ORDER BY created_at, username`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	profiles := make([]*domain.UserProfile, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.Update")
	defer span.End()

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	updatedAt := time.Now().UTC()
	if profile.UpdatedAt != nil {
		updatedAt = *profile.UpdatedAt
	}

	query := `
		UPDATE user_profiles
		SET username = $2, data = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, profile.ID, profile.Username, data, updatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) DeleteByUsername(ctx context.Context, username string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.DeleteByUsername")
	defer span.End()

	return r.delete(ctx, `DELETE FROM user_profiles WHERE username = $1`, username)
}

func (r *profileRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.DeleteByID")
	defer span.End()

	return r.delete(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
}

func (r *profileRepository) delete(ctx context.Context, query string, arg any) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, arg)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrProfileAlreadyExists
	}
	return err
}
