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

	"github.com/frahmantamala/loanlink/internal"
	"github.com/frahmantamala/loanlink/internal/application"
	applicationRepo "github.com/frahmantamala/loanlink/internal/application/postgres"
	"github.com/frahmantamala/loanlink/internal/auth"
	"github.com/frahmantamala/loanlink/internal/core/events"
	"github.com/frahmantamala/loanlink/internal/loan"
	loanRepo "github.com/frahmantamala/loanlink/internal/loan/postgres"
	"github.com/frahmantamala/loanlink/internal/payment"
	paymentRepo "github.com/frahmantamala/loanlink/internal/payment/postgres"
	"github.com/frahmantamala/loanlink/internal/paymentgateway"
	"github.com/frahmantamala/loanlink/internal/transport/rest"
	"github.com/frahmantamala/loanlink/internal/user"
	userRepo "github.com/frahmantamala/loanlink/internal/user/postgres"
	"github.com/frahmantamala/loanlink/pkg/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// TranslateError makes unique-index violations come back as
	// gorm.ErrDuplicatedKey, which reconciliation depends on.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	verifier, err := auth.NewTokenVerifier(config.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)
	gatewayClient := paymentgateway.NewClient(config.Payment, appLogger)

	loanService := loan.NewService(loanRepo.NewLoanRepository(gormDB), appLogger)
	applicationRepository := applicationRepo.NewApplicationRepository(gormDB)
	applicationService := application.NewService(applicationRepository, appLogger)
	userService := user.NewService(userRepo.NewUserRepository(gormDB), appLogger)
	paymentService := payment.NewService(
		paymentRepo.NewPaymentRepository(gormDB),
		applicationRepository,
		gatewayClient,
		eventBus,
		config.Server.ClientOrigin,
		appLogger,
	)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:                 db.DB,
		AuthMiddleware:     auth.NewMiddleware(verifier, userService),
		LoanHandler:        loan.NewHandler(loanService),
		ApplicationHandler: application.NewHandler(applicationService),
		PaymentHandler:     payment.NewHandler(paymentService),
		UserHandler:        user.NewHandler(userService),
		ClientOrigin:       config.Server.ClientOrigin,
		Logger:             appLogger,
	})

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: router,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
