package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/gw-library-ledger/docs"
	"github.com/sbilibin2017/gw-library-ledger/internal/app"
	"github.com/sbilibin2017/gw-library-ledger/internal/facades"
	"github.com/sbilibin2017/gw-library-ledger/internal/handlers"
	"github.com/sbilibin2017/gw-library-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"github.com/sbilibin2017/gw-library-ledger/internal/repositories"
	"github.com/sbilibin2017/gw-library-ledger/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-library-ledger API
// @version 1.0.0
// @description Library catalog service: books, loans and borrow/return history
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

type config struct {
	appHost     string
	appPort     string
	logLevel    string
	logEncoding string

	store app.StoreConfig

	// Redis is optional. An empty host disables logout.
	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int

	// Kafka is optional. No brokers disables ledger events.
	kafkaBrokers []string
	kafkaTopic   string

	jwtSecretKey string
	jwtExpSecond int
}

// parseConfig loads environment variables from a file and returns
// the application, storage, Redis, Kafka, logging, and JWT configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.logEncoding = getEnv("APP_LOG_ENCODING", "json")

	// Store config
	cfg.store.Driver = getEnv("STORE_DRIVER", app.DriverPostgres)
	cfg.store.SQLitePath = getEnv("SQLITE_PATH", "library.db")
	cfg.store.MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	cfg.store.MongoDB = getEnv("MONGO_DB", "Library")

	pgHost := getEnv("POSTGRES_HOST", "localhost")
	pgUser := getEnv("POSTGRES_USER", "user")
	pgPassword := getEnv("POSTGRES_PASSWORD", "password")
	pgDB := getEnv("POSTGRES_DB", "database")
	pgPort, err := getInt("POSTGRES_PORT", "5432")
	if err != nil {
		return cfg, err
	}
	cfg.store.PostgresDSN = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	if cfg.store.MaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return cfg, err
	}
	if cfg.store.MaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return cfg, err
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "")
	if cfg.redisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return cfg, err
	}
	if cfg.redisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return cfg, err
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return cfg, err
	}
	if cfg.redisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return cfg, err
	}

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.kafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "ledger-events")

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.jwtExpSecond, err = getInt("JWT_EXP_SECOND", "3600"); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// routerDeps are the collaborators the HTTP API needs. sessions may be nil.
type routerDeps struct {
	ledger     *services.LedgerService
	auth       *services.AuthService
	tokens     *jwt.JWT
	sessions   *repositories.SessionRepository
	swaggerURL string
}

// newRouter mounts the API under /api/v1.
func newRouter(d routerDeps) http.Handler {
	var revoked middlewares.RevocationChecker
	if d.sessions != nil {
		revoked = d.sessions
	}
	authMiddleware := middlewares.AuthMiddleware(d.tokens, revoked)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", handlers.NewRegisterHandler(d.auth))
		r.Post("/login", handlers.NewLoginHandler(d.auth))

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			if d.sessions != nil {
				r.Post("/logout", handlers.NewLogoutHandler(d.auth))
			}
			r.Get("/books", handlers.NewListBooksHandler(d.ledger))
			r.Post("/borrow", handlers.NewBorrowHandler(d.ledger))
			r.Post("/return", handlers.NewReturnHandler(d.ledger))
			r.Get("/loans", handlers.NewListLoansHandler(d.ledger))
			r.Get("/history", handlers.NewListHistoryHandler(d.ledger))

			r.With(middlewares.RequireRole(models.RoleAdmin)).
				Post("/books", handlers.NewAddBookHandler(d.ledger))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(d.swaggerURL)))
	return r
}

// run initializes the logger, store, Redis, Kafka writer, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.logLevel, cfg.logEncoding); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to the store
	logger.Log.Infow("Opening store", "driver", cfg.store.Driver)
	store, err := app.OpenStore(ctx, cfg.store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close(context.Background())

	// Connect to Redis
	var sessions *repositories.SessionRepository
	if cfg.redisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
			Password:     cfg.redisPassword,
			DB:           cfg.redisDB,
			PoolSize:     cfg.redisPoolSize,
			MinIdleConns: cfg.redisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		sessions = repositories.NewSessionRepository(rdb)
	} else {
		logger.Log.Warn("Redis not configured, logout disabled")
	}

	// Kafka writer
	var events services.EventPublisher
	if len(cfg.kafkaBrokers) > 0 {
		writer := &kafka.Writer{
			Addr:         kafka.TCP(cfg.kafkaBrokers...),
			Topic:        cfg.kafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		}
		defer writer.Close()
		events = facades.NewLedgerEventsKafkaFacade(writer)
	} else {
		logger.Log.Warn("Kafka not configured, ledger events disabled")
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.jwtSecretKey),
		jwt.WithExpiration(time.Duration(cfg.jwtExpSecond)*time.Second),
	)

	// Initialize services
	var sessionStore services.SessionStore
	if sessions != nil {
		sessionStore = sessions
	}
	authService := services.NewAuthService(store.Accounts, tokens, sessionStore)
	ledgerService := store.Ledger(events)

	handler := newRouter(routerDeps{
		ledger:     ledgerService,
		auth:       authService,
		tokens:     tokens,
		sessions:   sessions,
		swaggerURL: fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
