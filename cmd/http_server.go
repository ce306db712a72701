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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hcmteam/personnel-management/internal"
	"github.com/hcmteam/personnel-management/internal/auth"
	"github.com/hcmteam/personnel-management/internal/department"
	departmentPostgres "github.com/hcmteam/personnel-management/internal/department/postgres"
	"github.com/hcmteam/personnel-management/internal/rbac"
	"github.com/hcmteam/personnel-management/internal/transport"
	"github.com/hcmteam/personnel-management/internal/transport/rest"
	"github.com/hcmteam/personnel-management/internal/user"
	userPostgres "github.com/hcmteam/personnel-management/internal/user/postgres"
	"github.com/hcmteam/personnel-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, gormDB, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	registerRoutes(router, cfg, db, gormDB, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
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
		if err := db.Close(); err != nil {
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

func registerRoutes(router *chi.Mux, cfg *internal.Config, db *sqlx.DB, gormDB *gorm.DB, log *slog.Logger) {
	baseHandler := transport.NewBaseHandler(log)

	userRepo := userPostgres.NewUserRepository(gormDB)
	departmentRepo := departmentPostgres.NewDepartmentRepository(gormDB)

	policy := rbac.NewPolicy(userRepo, log)
	hasher := auth.NewBcryptHasher(cfg.Security.BCryptCost)
	identity := auth.NewIdentityResolver(cfg.Security.TokenSecret, log)

	departmentService := department.NewService(departmentRepo, log)
	userService := user.NewService(userRepo, departmentService, policy, hasher, log)

	userHandler := user.NewHandler(baseHandler, userService)
	departmentHandler := department.NewHandler(baseHandler, departmentService)

	rest.RegisterAllRoutes(router, db.DB, identity, userHandler, departmentHandler, cfg.Server.AllowedOrigins, log)
}

// initDB opens one pgx-backed connection pool and layers GORM on top of it
// so the health check and the repositories share the same pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), &gorm.Config{})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return dbConn, gormDB, nil
}
