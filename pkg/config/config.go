package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Server struct {
	Port      string `env:"PORT, default=8080"`
	Env       string `env:"ENV, default=development"`
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:8080"`
}

type Database struct {
	PostgresConnStr string `env:"POSTGRES_CONN_STR, required"`
	MongoURI        string `env:"MONGO_URI, required"`
	MongoDatabase   string `env:"MONGO_DATABASE, default=socialmedia"`
}

type Auth struct {
	JWTSecret               string        `env:"JWT_SECRET, default=supersecretjwtkey"`
	TokenTTL                time.Duration `env:"TOKEN_TTL, default=72h"`
	FirebaseCredentialsPath string        `env:"FIREBASE_CREDENTIALS_PATH"`
}

// Redis is optional; an empty Addr selects the in-process token store.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type Feed struct {
	ForceDateDesc bool `env:"FEED_FORCE_DATE_DESC, default=true"`
}

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Redis    Redis
	Feed     Feed
}

// Load reads .env when present and then processes the environment.
func Load(ctx context.Context) (*Config, error) {
	// a missing .env is fine, the variables may come from the environment
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
