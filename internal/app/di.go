// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/grpc"

	"github.com/allisson/ai-service/internal/config"
	"github.com/allisson/ai-service/internal/database"
	"github.com/allisson/ai-service/internal/http"
	"github.com/allisson/ai-service/internal/metrics"
	userHTTP "github.com/allisson/ai-service/internal/user/http"
	userRepository "github.com/allisson/ai-service/internal/user/repository"
	userUsecase "github.com/allisson/ai-service/internal/user/usecase"
	vectorHTTP "github.com/allisson/ai-service/internal/vector/http"
	vectorRepository "github.com/allisson/ai-service/internal/vector/repository"
	vectorUsecase "github.com/allisson/ai-service/internal/vector/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	sessionFactory  database.SessionFactory
	vectorClient    *weaviate.Client
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Repositories
	userRepo   userUsecase.UserRepository
	vectorRepo *vectorRepository.WeaviateRepository

	// Use Cases
	userUseCase   userUsecase.UseCase
	vectorUseCase vectorUsecase.UseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	sessionFactoryInit  sync.Once
	vectorClientInit    sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	userRepoInit        sync.Once
	vectorRepoInit      sync.Once
	userUseCaseInit     sync.Once
	vectorUseCaseInit   sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// SessionFactory returns the session factory bound to the database connection.
func (c *Container) SessionFactory() (database.SessionFactory, error) {
	c.sessionFactoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["sessionFactory"] = fmt.Errorf("failed to get database for session factory: %w", err)
			return
		}
		c.sessionFactory = database.NewSessionFactory(db)
	})
	if storedErr, exists := c.initErrors["sessionFactory"]; exists {
		return nil, storedErr
	}
	return c.sessionFactory, nil
}

// VectorClient returns the Weaviate client instance.
func (c *Container) VectorClient() (*weaviate.Client, error) {
	c.vectorClientInit.Do(func() {
		client, err := weaviate.NewClient(weaviate.Config{
			Host:   c.config.WeaviateAddr(),
			Scheme: c.config.WeaviateScheme,
			GrpcConfig: &grpc.Config{
				Host:    c.config.WeaviateGRPCAddr(),
				Secured: c.config.WeaviateScheme == "https",
			},
		})
		if err != nil {
			c.initErrors["vectorClient"] = fmt.Errorf("failed to create weaviate client: %w", err)
			return
		}
		c.vectorClient = client
	})
	if storedErr, exists := c.initErrors["vectorClient"]; exists {
		return nil, storedErr
	}
	return c.vectorClient, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}

		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		repo, err := c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
			return
		}
		c.userRepo = repo
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// VectorRepository returns the Weaviate repository instance.
func (c *Container) VectorRepository() (*vectorRepository.WeaviateRepository, error) {
	c.vectorRepoInit.Do(func() {
		client, err := c.VectorClient()
		if err != nil {
			c.initErrors["vectorRepo"] = fmt.Errorf("failed to get weaviate client for vector repository: %w", err)
			return
		}
		c.vectorRepo = vectorRepository.NewWeaviateRepository(client)
	})
	if storedErr, exists := c.initErrors["vectorRepo"]; exists {
		return nil, storedErr
	}
	return c.vectorRepo, nil
}

// UserUseCase returns the user use case instance, metrics-decorated when enabled.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		useCase, err := c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}
		c.userUseCase = useCase
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// VectorUseCase returns the vector use case instance, metrics-decorated when enabled.
func (c *Container) VectorUseCase() (vectorUsecase.UseCase, error) {
	c.vectorUseCaseInit.Do(func() {
		useCase, err := c.initVectorUseCase()
		if err != nil {
			c.initErrors["vectorUseCase"] = err
			return
		}
		c.vectorUseCase = useCase
	})
	if storedErr, exists := c.initErrors["vectorUseCase"]; exists {
		return nil, storedErr
	}
	return c.vectorUseCase, nil
}

// HTTPServer returns the API server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler).With(slog.String("app", c.config.AppName))
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initUserRepository selects the repository matching the configured driver.
func (c *Container) initUserRepository() (userUsecase.UserRepository, error) {
	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserRepository(), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (userUsecase.UseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	useCase, err := userUsecase.NewUserUseCase(userRepo, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create user use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return userUsecase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initVectorUseCase creates the vector use case with all its dependencies.
func (c *Container) initVectorUseCase() (vectorUsecase.UseCase, error) {
	vectorRepo, err := c.VectorRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get vector repository for vector use case: %w", err)
	}

	useCase := vectorUsecase.NewVectorUseCase(vectorRepo, c.Logger())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return vectorUsecase.NewVectorUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initHTTPServer creates the API server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	sessionFactory, err := c.SessionFactory()
	if err != nil {
		return nil, err
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	vectorUseCase, err := c.VectorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vector use case for http server: %w", err)
	}

	vectorRepo, err := c.VectorRepository()
	if err != nil {
		return nil, err
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	server := http.NewServer(
		c.config,
		db,
		sessionFactory,
		userHTTP.NewUserHandler(userUseCase, logger),
		vectorHTTP.NewVectorHandler(vectorUseCase, logger),
		vectorRepo,
		metricsProvider,
		logger,
	)

	return server, nil
}
