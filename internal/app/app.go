package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/leodalati/Employee-Record-Management-System/internal/auth"
	"github.com/leodalati/Employee-Record-Management-System/internal/config"
	"github.com/leodalati/Employee-Record-Management-System/internal/logging"
	"github.com/leodalati/Employee-Record-Management-System/internal/metrics"
	"github.com/leodalati/Employee-Record-Management-System/internal/migrations"
	"github.com/leodalati/Employee-Record-Management-System/internal/repo"
)

type App struct {
	cfg    config.Config
	log    *zap.Logger
	db     *pgxpool.Pool
	redis  *redis.Client
	router *gin.Engine
}

// New connects to Postgres (and Redis when configured), applies the schema
// and builds the router. Every failure here is fatal to startup.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := NewPostgres(cfg.DB.URL)
	if err != nil {
		return nil, err
	}
	a.db = db

	if err := migrations.Up(cfg.DB.URL); err != nil {
		a.db.Close()
		return nil, err
	}

	var sessions auth.Store
	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			a.db.Close()
			return nil, err
		}
		a.redis = rdb
		sessions = auth.NewRedisStore(rdb, cfg.Session.TTL.Duration())
		log.Info("sessions stored in redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = auth.NewMemStore(cfg.Session.TTL.Duration())
		log.Warn("REDIS_ADDR not set, sessions kept in memory")
	}

	router, err := NewRouter(Deps{
		Config:    cfg,
		Logger:    log,
		Employees: repo.NewPGEmployeeRepo(db),
		Users:     repo.NewPGUserRepo(db),
		Sessions:  sessions,
		Metrics:   metrics.New(),
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.router = router
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close releases the Redis client and the pool. Call it after the HTTP server
// has drained.
func (a *App) Close() error {
	var err error
	if a.redis != nil {
		err = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	return err
}

// NewPostgres opens and pings a pool.
func NewPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func newEngine(cfg config.Config, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(log), m.Middleware())

	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cookie"},
			ExposeHeaders:    []string{"Content-Length", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	return r
}
