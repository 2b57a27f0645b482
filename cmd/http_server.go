package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/commerce-management/internal"
	"github.com/frahmantamala/commerce-management/internal/auth"
	authpg "github.com/frahmantamala/commerce-management/internal/auth/postgres"
	"github.com/frahmantamala/commerce-management/internal/cart"
	cartpg "github.com/frahmantamala/commerce-management/internal/cart/postgres"
	"github.com/frahmantamala/commerce-management/internal/catalog"
	catalogpg "github.com/frahmantamala/commerce-management/internal/catalog/postgres"
	"github.com/frahmantamala/commerce-management/internal/core/events"
	"github.com/frahmantamala/commerce-management/internal/order"
	orderpg "github.com/frahmantamala/commerce-management/internal/order/postgres"
	"github.com/frahmantamala/commerce-management/internal/rbac"
	rbacpg "github.com/frahmantamala/commerce-management/internal/rbac/postgres"
	"github.com/frahmantamala/commerce-management/internal/review"
	reviewpg "github.com/frahmantamala/commerce-management/internal/review/postgres"
	"github.com/frahmantamala/commerce-management/internal/transport"
	"github.com/frahmantamala/commerce-management/internal/transport/rest"
	"github.com/frahmantamala/commerce-management/internal/transport/swagger"
	"github.com/frahmantamala/commerce-management/internal/user"
	userpg "github.com/frahmantamala/commerce-management/internal/user/postgres"
	"github.com/frahmantamala/commerce-management/internal/wishlist"
	wishlistpg "github.com/frahmantamala/commerce-management/internal/wishlist/postgres"
	"github.com/frahmantamala/commerce-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Env, config.Logging.Level)
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	if _, err := swagger.LoadSpec("./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)
	registerEventHandlers(eventBus, appLogger)

	handlers := buildHandlers(config, gormDB, eventBus, appLogger)

	return &Dependencies{
		Config:   config,
		Logger:   appLogger,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		EventBus: eventBus,
	}, nil
}

func buildHandlers(cfg *internal.Config, gormDB *gorm.DB, eventBus *events.EventBus, appLogger *slog.Logger) rest.Handlers {
	baseHandler := transport.NewBaseHandler(appLogger)

	tokenGen := auth.NewJWTTokenGenerator(cfg.Security.AccessTokenSecret, cfg.Security.AccessTokenDuration)
	authService := auth.NewService(authpg.NewRepository(gormDB), tokenGen, cfg.Security.BCryptCost, appLogger)

	userService := user.NewService(userpg.NewUserRepository(gormDB), authService, appLogger)
	rbacService := rbac.NewService(rbacpg.NewRBACRepository(gormDB), appLogger)
	catalogService := catalog.NewService(catalogpg.NewCatalogRepository(gormDB), appLogger)
	cartService := cart.NewService(cartpg.NewCartRepository(gormDB), appLogger)
	orderService := order.NewService(orderpg.NewOrderRepository(gormDB), eventBus, appLogger)
	reviewService := review.NewService(reviewpg.NewReviewRepository(gormDB), appLogger)
	wishlistService := wishlist.NewService(wishlistpg.NewWishlistRepository(gormDB), appLogger)

	return rest.Handlers{
		Auth:     auth.NewHandler(authService),
		User:     user.NewHandler(baseHandler, userService),
		RBAC:     rbac.NewHandler(baseHandler, rbacService),
		Catalog:  catalog.NewHandler(baseHandler, catalogService),
		Cart:     cart.NewHandler(baseHandler, cartService),
		Order:    order.NewHandler(baseHandler, orderService),
		Review:   review.NewHandler(baseHandler, reviewService),
		Wishlist: wishlist.NewHandler(baseHandler, wishlistService),
	}
}

// registerEventHandlers wires audit-log subscribers for order lifecycle events.
func registerEventHandlers(bus *events.EventBus, appLogger *slog.Logger) {
	bus.Subscribe(events.EventTypeOrderPlaced, func(ctx context.Context, event events.Event) error {
		appLogger.Info("order placed",
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	})

	bus.Subscribe(events.EventTypeOrderCanceled, func(ctx context.Context, event events.Event) error {
		appLogger.Info("order canceled",
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	})
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
