// Package server wires storage, services and HTTP handlers into a runnable application.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/shareall/internal/crypto"
	"github.com/iudanet/shareall/internal/server/auth"
	"github.com/iudanet/shareall/internal/server/config"
	"github.com/iudanet/shareall/internal/server/handlers"
	"github.com/iudanet/shareall/internal/server/images"
	"github.com/iudanet/shareall/internal/server/images/fsstore"
	"github.com/iudanet/shareall/internal/server/images/s3store"
	"github.com/iudanet/shareall/internal/server/middleware"
	"github.com/iudanet/shareall/internal/server/service"
	"github.com/iudanet/shareall/internal/server/storage"
	"github.com/iudanet/shareall/internal/server/storage/postgres"
	"github.com/iudanet/shareall/internal/server/storage/sqlite"
)

const (
	// seedUserCount количество пользователей для режима разработки
	seedUserCount = 15
	// seedPassword пароль пользователей режима разработки
	seedPassword = "P4sW@ord"
	// maxBodyBytes ограничивает размер тела запроса, base64 изображение включительно
	maxBodyBytes = 10 << 20
)

// Database объединяет хранилища, которые нужны приложению
type Database interface {
	storage.UserStorage
	storage.PostStorage
	Ping(ctx context.Context) error
	Close() error
}

// App содержит собранное приложение
type App struct {
	logger   *slog.Logger
	cfg      *config.Config
	db       Database
	images   images.Store
	accounts *service.AccountService
	limiter  *middleware.RateLimiter
	handler  http.Handler
	version  string
}

// Open открывает хранилища по конфигурации и собирает приложение
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (*App, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := openImageStore(ctx, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := New(cfg, logger, db, store, version)

	if cfg.SeedUsers {
		if err := app.accounts.Seed(ctx, seedUserCount, seedPassword); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("failed to seed users: %w", err)
		}
	}

	return app, nil
}

// New собирает приложение поверх готовых хранилищ
func New(cfg *config.Config, logger *slog.Logger, db Database, store images.Store, version string) *App {
	hasher := crypto.NewPasswordHasher(cfg.BcryptCost)

	app := &App{
		logger:   logger,
		cfg:      cfg,
		db:       db,
		images:   store,
		accounts: service.NewAccountService(logger, db, hasher, store),
		limiter:  middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, logger),
		version:  version,
	}

	authenticator := auth.NewAuthenticator(logger, db, hasher)
	posts := service.NewPostService(logger, db)

	app.handler = app.routes(authenticator, posts)
	return app
}

func (a *App) routes(authenticator *auth.Authenticator, posts *service.PostService) http.Handler {
	authHandler := handlers.NewAuthHandler(a.logger, a.accounts)
	userHandler := handlers.NewUserHandler(a.logger, a.accounts)
	postHandler := handlers.NewPostHandler(a.logger, posts)
	imageHandler := handlers.NewImageHandler(a.logger, a.images)
	healthHandler := handlers.NewHealthHandler(a.logger, a.db, a.version)

	requireAuth := middleware.RequireAuth(a.logger)
	requireSelf := middleware.RequireSelf(a.logger, "id")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/1.0/users", authHandler.Register)
	mux.HandleFunc("GET /api/1.0/users", userHandler.List)
	mux.HandleFunc("GET /api/1.0/users/{username}", userHandler.Get)
	mux.Handle("PUT /api/1.0/users/{id}", requireAuth(requireSelf(http.HandlerFunc(userHandler.Update))))
	mux.Handle("POST /api/1.0/login", requireAuth(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/1.0/posts", requireAuth(http.HandlerFunc(postHandler.Create)))
	mux.HandleFunc("GET /api/1.0/health", healthHandler.Health)
	mux.HandleFunc("GET /images/profile/{name}", imageHandler.Profile)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound), nil)
	})

	// Порядок: recovery -> logging -> rate limit -> basic auth -> маршруты
	var handler http.Handler = http.MaxBytesHandler(mux, maxBodyBytes)
	handler = middleware.BasicAuth(a.logger, authenticator, a.limiter)(handler)
	handler = middleware.RateLimitRoutes(a.limiter, "POST /api/1.0/users", "POST /api/1.0/login")(handler)
	handler = middleware.LoggingMiddleware(a.logger, "/api/1.0/health")(handler)
	handler = middleware.RecoveryMiddleware(a.logger)(handler)

	return handler
}

// Handler возвращает корневой HTTP handler
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(a.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting",
			slog.String("addr", a.cfg.Addr),
			slog.String("storage", a.cfg.StorageDriver),
			slog.String("images", a.cfg.ImageBackend),
			slog.String("version", a.version))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server", slog.Duration("timeout", a.cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}

// Close освобождает ресурсы приложения
func (a *App) Close() error {
	a.limiter.Stop()
	return a.db.Close()
}

func openDatabase(ctx context.Context, cfg *config.Config) (Database, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := sqlite.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openImageStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (images.Store, error) {
	switch cfg.ImageBackend {
	case config.ImageBackendFS:
		store, err := fsstore.New(logger, cfg.UploadPath, cfg.ProfileFolder, cfg.AttachmentsFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to open image directory: %w", err)
		}
		return store, nil
	case config.ImageBackendS3:
		store, err := s3store.New(ctx, logger, s3store.Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.ProfileFolder,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 image store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown image backend %q", cfg.ImageBackend)
	}
}
