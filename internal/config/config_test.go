package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.True(t, cfg.Geocoding.Enabled)
	assert.Equal(t, time.Second, cfg.Geocoding.MinInterval)
	assert.Equal(t, "ie", cfg.Geocoding.CountryCodes)
	assert.Equal(t, "MatchDotCom/1.0 (contact@matchdotcom.ie)", cfg.Geocoding.UserAgent)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_USER", "match")
	t.Setenv("DB_NAME", "matchdotcom")
	t.Setenv("GEOCODER_MIN_INTERVAL", "1500ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, 1500*time.Millisecond, cfg.Geocoding.MinInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "host=localhost port=5432 user=match password= dbname=matchdotcom sslmode=disable", cfg.Database.GetDSN())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080},
			Store:     StoreConfig{Driver: StoreMemory},
			Mongo:     MongoConfig{URI: "mongodb://localhost", Database: "db", Collection: "c"},
			Geocoding: GeocodingConfig{Enabled: true, BaseURL: "http://x", UserAgent: "ua", MinInterval: time.Second},
			Redis:     RedisConfig{CacheTTL: time.Hour},
		}
	}

	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"bad port":             func(c *Config) { c.Server.Port = 0 },
		"unknown driver":       func(c *Config) { c.Store.Driver = "sqlite" },
		"postgres without db":  func(c *Config) { c.Store.Driver = StorePostgres },
		"mongo without uri":    func(c *Config) { c.Store.Driver = StoreMongo; c.Mongo.URI = "" },
		"geocoder without url": func(c *Config) { c.Geocoding.BaseURL = "" },
		"negative interval":    func(c *Config) { c.Geocoding.MinInterval = -time.Second },
		"cache without ttl":    func(c *Config) { c.Redis.Enabled = true; c.Redis.CacheTTL = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("disabled geocoder skips its checks", func(t *testing.T) {
		cfg := valid()
		cfg.Geocoding = GeocodingConfig{}
		assert.NoError(t, cfg.Validate())
	})
}
