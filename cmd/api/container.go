// Package main provides the API server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	catapp "github.com/lllypuk/catmap/internal/application/cat"
	userapp "github.com/lllypuk/catmap/internal/application/user"
	"github.com/lllypuk/catmap/internal/config"
	"github.com/lllypuk/catmap/internal/domain/geo"
	graphqlhandler "github.com/lllypuk/catmap/internal/handler/graphql"
	httphandler "github.com/lllypuk/catmap/internal/handler/http"
	"github.com/lllypuk/catmap/internal/infrastructure/healthcheck"
	"github.com/lllypuk/catmap/internal/infrastructure/httpserver"
	"github.com/lllypuk/catmap/internal/infrastructure/metrics"
	mongodbinfra "github.com/lllypuk/catmap/internal/infrastructure/mongodb"
	"github.com/lllypuk/catmap/internal/infrastructure/repository/memory"
	"github.com/lllypuk/catmap/internal/infrastructure/repository/mongodb"
	"github.com/lllypuk/catmap/internal/infrastructure/storage"
	"github.com/lllypuk/catmap/internal/infrastructure/storage/local"
	miniostore "github.com/lllypuk/catmap/internal/infrastructure/storage/minio"
	"github.com/lllypuk/catmap/internal/middleware"
	"github.com/lllypuk/catmap/internal/service"
)

// Container initialization timeouts.
const (
	containerInitTimeout   = 30 * time.Second
	redisPingTimeout       = 5 * time.Second
	mongoDisconnectTimeout = 10 * time.Second
)

const rateLimitKeyPrefix = "catmap:ratelimit:"

// AssetStore is the upload store used by the handlers and the health check.
type AssetStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	Open(ctx context.Context, name string) (*storage.Asset, error)
	Ping(ctx context.Context) error
	Name() string
}

// Container holds all application dependencies and manages their lifecycle.
// It implements httpserver.HealthChecker for unified health endpoint support.
type Container struct {
	// Configuration
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	MongoDB        *mongo.Client
	MongoDBName    string
	Redis          *redis.Client
	Assets         AssetStore
	RateLimitStore middleware.RateLimitStore
	Registry       *prometheus.Registry
	Metrics        *metrics.APIMetrics

	// Repositories
	UserRepo userapp.Repository
	CatRepo  catapp.Repository

	// Services
	UserService *service.UserService
	CatService  *service.CatService

	// HTTP Handlers
	GraphQLHandler *graphqlhandler.Handler
	UploadHandler  *httphandler.UploadHandler

	checkers []healthcheck.Checker
}

// Ensure Container implements httpserver.HealthChecker.
var _ httpserver.HealthChecker = (*Container)(nil)

// ContainerOption configures the Container.
type ContainerOption func(*Container)

// WithLogger sets a custom logger for the container.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		c.Logger = logger
	}
}

// WithRegistry replaces the Prometheus registry, mainly for tests.
func WithRegistry(registry *prometheus.Registry) ContainerOption {
	return func(c *Container) {
		c.Registry = registry
	}
}

// NewContainer creates a new dependency injection container.
// The wiring mode (real/mock) is determined by config.App.Mode.
func NewContainer(cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logWiringMode()

	if err := c.setupInfrastructure(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup infrastructure: %w", err)
	}

	c.setupRepositories()
	c.setupServices()

	if err := c.setupHTTPHandlers(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup handlers: %w", err)
	}

	c.setupHealthCheckers()

	if err := c.validateWiring(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("wiring validation failed: %w", err)
	}

	return c, nil
}

func (c *Container) logWiringMode() {
	mode := c.Config.App.Mode
	if mode == "" {
		mode = config.AppModeReal
	}

	if c.Config.App.IsMockMode() {
		c.Logger.Warn("container starting in MOCK mode, data is kept in memory",
			slog.String("mode", string(mode)),
			slog.String("storage", c.Config.Storage.Driver),
			slog.Bool("redis", c.Config.Redis.Enabled()),
		)
	} else {
		c.Logger.Info("container starting in REAL mode",
			slog.String("mode", string(mode)),
			slog.String("storage", c.Config.Storage.Driver),
			slog.Bool("redis", c.Config.Redis.Enabled()),
		)
	}
}

// validateWiring ensures all required dependencies are properly initialized.
func (c *Container) validateWiring() error {
	var errs []error

	if c.Config.App.IsRealMode() && c.MongoDB == nil {
		errs = append(errs, errors.New("mongodb client not initialized in real mode"))
	}
	if c.Config.Redis.Enabled() && c.Redis == nil {
		errs = append(errs, errors.New("redis client not initialized"))
	}
	if c.Assets == nil {
		errs = append(errs, errors.New("asset store not initialized"))
	}
	if c.UserRepo == nil || c.CatRepo == nil {
		errs = append(errs, errors.New("repositories not initialized"))
	}
	if c.GraphQLHandler == nil {
		errs = append(errs, errors.New("graphql handler not initialized"))
	}
	if c.UploadHandler == nil {
		errs = append(errs, errors.New("upload handler not initialized"))
	}

	return errors.Join(errs...)
}

// setupInfrastructure initializes MongoDB, Redis, the asset store and metrics.
func (c *Container) setupInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), containerInitTimeout)
	defer cancel()

	if c.Config.App.IsRealMode() {
		if err := c.setupMongoDB(ctx); err != nil {
			return fmt.Errorf("mongodb: %w", err)
		}
	}

	if err := c.setupRedis(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := c.setupStorage(ctx); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	c.setupMetrics()

	return nil
}

// setupMongoDB initializes the MongoDB client and the indexes.
func (c *Container) setupMongoDB(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(c.Config.MongoDB.URI).
		SetMaxPoolSize(c.Config.MongoDB.MaxPoolSize)

	client, connectErr := mongo.Connect(clientOpts)
	if connectErr != nil {
		return fmt.Errorf("failed to connect: %w", connectErr)
	}
	c.MongoDB = client

	pingCtx, cancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer cancel()

	if pingErr := client.Ping(pingCtx, nil); pingErr != nil {
		return fmt.Errorf("failed to ping: %w", pingErr)
	}

	c.MongoDBName = c.Config.MongoDB.Database

	c.Logger.InfoContext(ctx, "connected to MongoDB",
		slog.String("database", c.Config.MongoDB.Database),
	)

	db := client.Database(c.Config.MongoDB.Database)
	indexCtx, indexCancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer indexCancel()

	if indexErr := mongodbinfra.CreateAllIndexes(indexCtx, db); indexErr != nil {
		return fmt.Errorf("failed to create indexes: %w", indexErr)
	}

	c.Logger.InfoContext(ctx, "MongoDB indexes created successfully")

	return nil
}

// setupRedis connects the rate limiter to Redis when an address is
// configured, and falls back to an in-process store otherwise.
func (c *Container) setupRedis(ctx context.Context) error {
	if !c.Config.Redis.Enabled() {
		c.RateLimitStore = middleware.NewMemoryRateLimitStore()
		c.Logger.InfoContext(ctx, "redis disabled, rate limits are kept in memory")
		return nil
	}

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
		PoolSize: c.Config.Redis.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if pingErr := c.Redis.Ping(pingCtx).Err(); pingErr != nil {
		return fmt.Errorf("failed to ping: %w", pingErr)
	}

	c.RateLimitStore = middleware.NewRedisRateLimitStore(middleware.NewGoRedisClient(c.Redis), rateLimitKeyPrefix)

	c.Logger.InfoContext(ctx, "connected to Redis",
		slog.String("addr", c.Config.Redis.Addr),
	)

	return nil
}

// setupStorage opens the configured asset store.
func (c *Container) setupStorage(ctx context.Context) error {
	switch c.Config.Storage.Driver {
	case config.StorageMinio:
		store, err := miniostore.New(ctx, miniostore.Config{
			Endpoint:     c.Config.Storage.Endpoint,
			AccessKey:    c.Config.Storage.AccessKey,
			SecretKey:    c.Config.Storage.SecretKey,
			Bucket:       c.Config.Storage.Bucket,
			Region:       c.Config.Storage.Region,
			CreateBucket: c.Config.Storage.CreateBucket,
		})
		if err != nil {
			return err
		}
		c.Assets = store
	default:
		store, err := local.New(c.Config.Storage.Dir)
		if err != nil {
			return err
		}
		c.Assets = store
	}

	c.Logger.InfoContext(ctx, "asset store ready", slog.String("driver", c.Assets.Name()))
	return nil
}

func (c *Container) setupMetrics() {
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
		c.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	c.Metrics = metrics.NewAPIMetrics(c.Registry)
}

// setupRepositories picks MongoDB or in-memory repositories by wiring mode.
func (c *Container) setupRepositories() {
	if c.Config.App.IsMockMode() {
		c.UserRepo = memory.NewUserRepository()
		c.CatRepo = memory.NewCatRepository()
		c.Logger.Debug("in-memory repositories initialized")
		return
	}

	db := c.MongoDB.Database(c.MongoDBName)
	c.UserRepo = mongodb.NewMongoUserRepository(
		db.Collection(mongodbinfra.CollectionUsers),
		mongodb.WithUserRepoLogger(c.Logger),
	)
	c.CatRepo = mongodb.NewMongoCatRepository(
		db.Collection(mongodbinfra.CollectionCats),
		mongodb.WithCatRepoLogger(c.Logger),
	)
	c.Logger.Debug("mongodb repositories initialized")
}

func (c *Container) setupServices() {
	c.UserService = service.NewUserService(c.UserRepo)
	c.CatService = service.NewCatService(c.CatRepo, userapp.NewOwnerResolver(c.UserRepo))
}

func (c *Container) setupHTTPHandlers() error {
	schema, err := graphqlhandler.NewSchema(graphqlhandler.NewResolver(c.CatService, c.UserService, c.Logger))
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}
	c.GraphQLHandler = graphqlhandler.NewHandler(schema, c.Logger, c.Metrics)

	c.UploadHandler = httphandler.NewUploadHandler(c.Assets, c.Metrics, c.uploadChain()...)

	return nil
}

// uploadChain returns the middleware in front of POST /upload: rate limit,
// then location, then validation and storage of the file.
func (c *Container) uploadChain() []echo.MiddlewareFunc {
	var chain []echo.MiddlewareFunc

	if c.Config.RateLimit.Enabled {
		rl := middleware.DefaultRateLimitConfig()
		rl.Logger = c.Logger
		rl.Store = c.RateLimitStore
		rl.Limit = c.Config.RateLimit.Requests
		rl.Window = c.Config.RateLimit.Window
		rl.BurstSize = 0
		chain = append(chain, middleware.RateLimitByIP(rl))
	}

	coords := middleware.DefaultCoordinatesConfig()
	coords.Logger = c.Logger
	coords.FormField = c.Config.Upload.FormField
	coords.Default = geo.Point{Lng: c.Config.Upload.DefaultLng, Lat: c.Config.Upload.DefaultLat}

	upload := middleware.DefaultUploadConfig()
	upload.Logger = c.Logger
	upload.Store = c.Assets
	upload.FormField = c.Config.Upload.FormField
	upload.MaxSize = c.Config.Upload.MaxSize
	upload.AllowedTypes = c.Config.Upload.AllowedTypes

	return append(chain, middleware.Coordinates(coords), middleware.UploadFile(upload))
}

func (c *Container) setupHealthCheckers() {
	if c.MongoDB != nil {
		c.checkers = append(c.checkers, healthcheck.NewMongoChecker(c.MongoDB.Database(c.MongoDBName)))
	}
	if c.Redis != nil {
		c.checkers = append(c.checkers, healthcheck.NewRedisChecker(c.Redis))
	}
	c.checkers = append(c.checkers,
		healthcheck.NewStorageChecker(c.Assets),
		healthcheck.NewRecordsChecker(map[string]healthcheck.Counter{
			"users": c.UserRepo,
			"cats":  c.CatRepo,
		}),
	)
}

// Close releases all resources held by the container.
func (c *Container) Close() error {
	c.Logger.Info("closing container resources...")

	var errs []error

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		} else {
			c.Logger.Debug("redis connection closed")
		}
	}

	if c.MongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
		defer cancel()

		if err := c.MongoDB.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongodb disconnect: %w", err))
		} else {
			c.Logger.Debug("mongodb connection closed")
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.Logger.Info("all container resources closed")
	return nil
}

// IsReady implements httpserver.HealthChecker.
func (c *Container) IsReady(ctx context.Context) bool {
	for _, checker := range c.checkers {
		if status := checker.Check(ctx); !status.Healthy {
			c.Logger.WarnContext(ctx, "health check failed",
				slog.String("component", checker.Name()),
				slog.String("message", status.Message),
			)
			return false
		}
	}
	return true
}

// GetHealthStatus implements httpserver.HealthChecker.
func (c *Container) GetHealthStatus(ctx context.Context) []httpserver.ComponentStatus {
	statuses := make([]httpserver.ComponentStatus, 0, len(c.checkers)+1)

	if c.Config.App.IsMockMode() {
		statuses = append(statuses, httpserver.ComponentStatus{
			Name:    "repositories",
			Status:  httpserver.StatusDegraded,
			Message: "in-memory, data is lost on restart",
		})
	}

	for _, checker := range c.checkers {
		status := checker.Check(ctx)
		component := httpserver.ComponentStatus{
			Name:    checker.Name(),
			Status:  httpserver.StatusHealthy,
			Message: status.Message,
			Details: status.Details,
		}
		if !status.Healthy {
			component.Status = httpserver.StatusUnhealthy
		}
		statuses = append(statuses, component)
	}

	return statuses
}
