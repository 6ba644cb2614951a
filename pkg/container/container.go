package container

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	infraDB "library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	"library-backend/internal/domains/auth"
	authHandler "library-backend/internal/domains/auth/handler"
	authRepo "library-backend/internal/domains/auth/repository"
	authService "library-backend/internal/domains/auth/service"
	"library-backend/internal/domains/author"
	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"
	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	"library-backend/internal/domains/loan"
	loanHandler "library-backend/internal/domains/loan/handler"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
	"library-backend/internal/domains/user"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; initialization order is
// config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *infraDB.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache
	JWTManager *jwt.Manager
	TxRunner   database.TxRunner

	// Repositories
	UserRepo   user.Repository
	BookRepo   book.Repository
	AuthorRepo author.Repository
	LoanRepo   loan.Repository
	TokenRepo  auth.TokenRepository

	// Services
	UserService    user.Service
	BookService    bookService.ServiceInterface
	AuthorService  authorService.ServiceInterface
	LendingService *loanService.LendingService
	TokenService   *authService.TokenService

	// Handlers
	UserHandler    *userHandler.UserHandler
	BookHandler    *bookHandler.BookHandler
	AuthorHandler  *authorHandler.AuthorHandler
	LendingHandler *loanHandler.LendingHandler
	AuthHandler    *authHandler.AuthHandler
}

// NewContainer builds and initializes the whole dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// Step 2: database
	db := infraDB.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	c.DB = db
	c.TxRunner = database.NewPoolTxRunner(db.Pool)

	// Step 3: redis - credential store AND cache live here, so unlike
	// the catalog cache this connection is not optional
	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = redisClient
	c.Cache = infraCache.NewRedisCache(redisClient)

	c.JWTManager = jwt.NewManager(cfg.Token.Secret, cfg.Token.Expiry())

	// Step 4: repositories
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
	c.LoanRepo = loanRepo.NewPostgresRepository(db.Pool)
	c.TokenRepo = authRepo.NewRedisRepository(redisClient.Client)

	// Step 5: services
	c.UserService = userService.NewUserService(c.UserRepo, c.LoanRepo, c.TxRunner)
	c.BookService = bookService.NewService(c.BookRepo, c.Cache)
	c.AuthorService = authorService.NewService(c.AuthorRepo, c.BookRepo)
	c.LendingService = loanService.NewLendingService(c.BookRepo, c.LoanRepo, c.TxRunner, c.Cache)
	c.TokenService = authService.NewTokenService(c.TokenRepo, c.JWTManager)

	// Step 6: handlers
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.TokenService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.LendingHandler = loanHandler.NewLendingHandler(c.LendingService)
	c.AuthHandler = authHandler.NewAuthHandler(c.UserService, c.TokenService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("redis close", err)
		}
	}
}
