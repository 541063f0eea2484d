package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

// profileDocument keys the aggregate by its string ID so lookups and the
// unique index work on readable values.
type profileDocument struct {
	ID        string              `bson:"_id"`
	Username  string              `bson:"username"`
	CreatedAt time.Time           `bson:"created_at"`
	Profile   *domain.UserProfile `bson:"profile"`
}

func newProfileDocument(p *domain.UserProfile) profileDocument {
	return profileDocument{
		ID:        p.ID.String(),
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
		Profile:   p,
	}
}

type profileRepository struct {
	profiles *mongo.Collection
	tracer   trace.Tracer
}

func NewProfileRepository(db *mongo.Database, collection string, tracer trace.Tracer) repository.ProfileRepository {
	return &profileRepository{
		profiles: db.Collection(collection),
		tracer:   tracer,
	}
}

// EnsureIndexes creates the unique username index.
func EnsureIndexes(ctx context.Context, db *mongo.Database, collection string) error {
	_, err := db.Collection(collection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *profileRepository) Add(ctx context.Context, profile *domain.UserProfile) error {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.Add")
	defer span.End()

	_, err := r.profiles.InsertOne(ctx, newProfileDocument(profile))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrProfileAlreadyExists
	}
	return err
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.GetByUsername")
	defer span.End()

	return r.filterOne(ctx, bson.M{"username": username})
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.GetByID")
	defer span.End()

	return r.filterOne(ctx, bson.M{"_id": id.String()})
}

func (r *profileRepository) GetAll(ctx context.Context) ([]*domain.UserProfile, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.GetAll")
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "username", Value: 1}})
	cursor, err := r.profiles.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := make([]*domain.UserProfile, 0)
	for cursor.Next(ctx) {
		var doc profileDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		profiles = append(profiles, doc.Profile)
	}
	return profiles, cursor.Err()
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.Update")
	defer span.End()

	result, err := r.profiles.ReplaceOne(ctx, bson.M{"_id": profile.ID.String()}, newProfileDocument(profile))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) DeleteByUsername(ctx context.Context, username string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.DeleteByUsername")
	defer span.End()

	return r.deleteOne(ctx, bson.M{"username": username})
}

func (r *profileRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "ProfileRepository.DeleteByID")
	defer span.End()

	return r.deleteOne(ctx, bson.M{"_id": id.String()})
}

func (r *profileRepository) filterOne(ctx context.Context, filter bson.M) (*domain.UserProfile, error) {
	var doc profileDocument
	if err := r.profiles.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return doc.Profile, nil
}

func (r *profileRepository) deleteOne(ctx context.Context, filter bson.M) (bool, error) {
	result, err := r.profiles.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
