package container

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/config"
	"github.com/gdugdh24/matchdotcom-backend/internal/delivery/http"
	"github.com/gdugdh24/matchdotcom-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/infrastructure/database"
	"github.com/gdugdh24/matchdotcom-backend/internal/infrastructure/geocoding"
	"github.com/gdugdh24/matchdotcom-backend/internal/infrastructure/server"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository/memory"
	mongorepo "github.com/gdugdh24/matchdotcom-backend/internal/repository/mongo"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository/postgres"
	"github.com/gdugdh24/matchdotcom-backend/internal/usecase/profile"
	"github.com/gdugdh24/matchdotcom-backend/internal/usecase/search"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/gdugdh24/matchdotcom-backend"

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *sqlx.DB
	Mongo  *mongo.Client
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}
	tracer := otel.Tracer(tracerName)

	profileRepo, err := c.initProfileRepository(ctx, tracer)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	resolver, err := c.initResolver(ctx, tracer)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	// Initialize use cases
	profileUseCase := profile.NewProfileUseCase(profileRepo, resolver, logger, tracer)
	searchUseCase := search.NewSearchUseCase(profileRepo, logger, tracer)

	// Initialize handlers
	if err := handler.RegisterValidators(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	profileHandler := handler.NewProfileHandler(profileUseCase)
	searchHandler := handler.NewSearchHandler(searchUseCase)

	router := http.NewRouter(profileHandler, searchHandler, logger)
	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)

	return c, nil
}

func (c *Container) initProfileRepository(ctx context.Context, tracer trace.Tracer) (repository.ProfileRepository, error) {
	log := c.Logger.WithField("store", c.Config.Store.Driver)

	switch c.Config.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgresDB(ctx, &c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		log.Info("using postgres profile store")
		return postgres.NewProfileRepository(db, tracer), nil

	case config.StoreMongo:
		client, err := database.NewMongoClient(ctx, &c.Config.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongo: %w", err)
		}
		c.Mongo = client
		db := client.Database(c.Config.Mongo.Database)
		if err := mongorepo.EnsureIndexes(ctx, db, c.Config.Mongo.Collection); err != nil {
			return nil, err
		}
		log.Info("using mongo profile store")
		return mongorepo.NewProfileRepository(db, c.Config.Mongo.Collection, tracer), nil

	default:
		log.Info("using in-memory profile store")
		return memory.NewProfileRepository(tracer), nil
	}
}

// initResolver builds the geocoding chain: Nominatim behind a shared rate
// limiter, optionally fronted by the Redis cache. A disabled geocoder leaves
// addresses at their default coordinates.
func (c *Container) initResolver(ctx context.Context, tracer trace.Tracer) (domain.Resolver, error) {
	gc := c.Config.Geocoding
	if !gc.Enabled {
		c.Logger.Warn("geocoding disabled, new addresses keep default coordinates")
		return nil, nil
	}

	var source geocoding.Source = geocoding.NewNominatimClient(
		geocoding.Config{
			BaseURL:      gc.BaseURL,
			UserAgent:    gc.UserAgent,
			CountryCodes: gc.CountryCodes,
			Timeout:      gc.Timeout,
		},
		geocoding.NewLimiter(gc.MinInterval),
		c.Logger,
		tracer,
	)

	if c.Config.Redis.Enabled {
		client, err := database.NewRedisClient(ctx, &c.Config.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = client
		source = geocoding.NewRedisCache(source, client, c.Config.Redis.CacheTTL, c.Logger)
	}

	fallback := geocoding.NewFallback(rand.New(rand.NewSource(time.Now().UnixNano())))
	return geocoding.NewGeocoder(source, fallback, c.Logger, tracer), nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.WithError(err).Error("error closing redis")
		}
	}

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			c.Logger.WithError(err).Error("error closing mongo")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
