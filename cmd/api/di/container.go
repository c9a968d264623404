package di

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"feedback-service/cmd/api/infrastructure"
	"feedback-service/internal/adapter/cache"
	"feedback-service/internal/adapter/db/postgres"
	ginhandler "feedback-service/internal/adapter/gin/handler"
	ginrouter "feedback-service/internal/adapter/gin/router"
	"feedback-service/internal/adapter/repository/cached"
	sessionstore "feedback-service/internal/adapter/session"
	"feedback-service/internal/config"
	"feedback-service/internal/usecase/auth"
	"feedback-service/internal/usecase/feedback"
	"feedback-service/internal/usecase/user"
	redisclient "feedback-service/pkg/redis"
	"feedback-service/pkg/security"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Sessions    *sessionstore.RedisStore
	AuthUC      auth.Usecase
	UserUC      user.Usecase
	FeedbackUC  feedback.Usecase
	Router      *gin.Engine
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis client
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Initialize repositories
	dbRepo := postgres.NewUserRepoPG(db, l)
	feedbackRepo := postgres.NewFeedbackRepoPG(db, l)

	var userCache cache.UserCache
	if cfg.Cache.Enabled {
		userCache = cache.NewRedisUserCache(rdb.Client, cfg.Cache.TTL, l)
	}
	userRepo := cached.NewCachedUserRepository(dbRepo, userCache, l)

	// Initialize use cases
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	authUC := auth.New(userRepo, hasher, l)
	userUC := user.New(userRepo, feedbackRepo, l)
	feedbackUC := feedback.New(feedbackRepo, l)

	// Initialize HTTP layer
	sessions := sessionstore.NewRedisStore(rdb.Client, cfg.Session.TTL, l)
	cookie := ginhandler.CookieConfig{
		Name:   cfg.Session.CookieName,
		MaxAge: int(cfg.Session.TTL.Seconds()),
		Secure: cfg.Session.Secure,
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := ginrouter.SetupRouter(ginrouter.Handlers{
		Auth:     ginhandler.NewAuthHandler(authUC, sessions, cookie, l),
		User:     ginhandler.NewUserHandler(userUC, sessions, cookie, l),
		Feedback: ginhandler.NewFeedbackHandler(feedbackUC, l),
	}, sessions, cfg.Session.CookieName, cfg.Logger.ServiceName, l)

	l.Info("dependencies initialized",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("bcrypt_cost", hasher.Cost()),
	)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Sessions:    sessions,
		AuthUC:      authUC,
		UserUC:      userUC,
		FeedbackUC:  feedbackUC,
		Router:      router,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
