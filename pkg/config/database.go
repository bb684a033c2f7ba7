package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the database connections
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client // nil when REDIS_ADDR is unset

	log *zap.Logger
}

// InitDB initializes and returns the database connections
func InitDB(ctx context.Context, cfg *Config, log *zap.Logger) (*DB, error) {
	postgresDB, err := initPostgres(cfg.Database.PostgresConnStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to PostgreSQL")
	}
	log.Info("connected to PostgreSQL")

	mongoClient, err := initMongo(ctx, cfg.Database.MongoURI)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.Database.MongoDatabase))

	db := &DB{Postgres: postgresDB, Mongo: mongoClient, log: log}

	if cfg.Redis.Addr != "" {
		db.Redis, err = initRedis(ctx, cfg.Redis)
		if err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "failed to connect to Redis")
		}
		log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	return db, nil
}

// initPostgres initializes the PostgreSQL database connection using GORM. Unique
// violations are translated to gorm.ErrDuplicatedKey.
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

func initRedis(ctx context.Context, cfg Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			db.log.Error("failed to get SQL DB from GORM", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			db.log.Error("failed to close PostgreSQL connection", zap.Error(err))
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.log.Error("failed to close MongoDB connection", zap.Error(err))
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			db.log.Error("failed to close Redis connection", zap.Error(err))
		}
	}
	db.log.Info("database connections closed")
}
