package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/vidshare/internal/config"
	"github.com/templui/vidshare/internal/db"
	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/service"
	"github.com/templui/vidshare/internal/storage"
)

type App struct {
	Cfg                  *config.Config
	DB                   *sqlx.DB
	Admins               *service.AdminAllowList
	Sessions             *service.SessionIssuer
	AuthService          *service.AuthService
	PasswordResetService *service.PasswordResetService
	AccountService       *service.AccountService
	VideoService         *service.VideoService
	MediaService         *service.MediaService
	AdminService         *service.AdminService
	EmailService         *service.EmailService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage
	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app, err := Build(cfg, database, fileStorage)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return app, nil
}

// Build wires repositories and services over an open database and object store.
func Build(cfg *config.Config, database *sqlx.DB, fileStorage storage.Storage) (*App, error) {
	sessions, err := service.NewSessionIssuer(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer, cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	// Repositories
	accountRepository := repository.NewAccountRepository(database)
	videoRepository := repository.NewVideoRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.TokenPasswordResetExpiry,
		cfg.IsDevelopment(),
	)
	mediaService := service.NewMediaService(fileStorage, cfg.S3PresignExpiryUpload)
	authService := service.NewAuthService(accountRepository, emailService, cfg.BcryptCost)
	resetService := service.NewPasswordResetService(accountRepository, authService, emailService, cfg.TokenPasswordResetExpiry)
	accountService := service.NewAccountService(accountRepository, videoRepository, authService, mediaService, emailService)
	videoService := service.NewVideoService(videoRepository, mediaService)
	adminService := service.NewAdminService(accountRepository, videoRepository, mediaService)

	return &App{
		Cfg:                  cfg,
		DB:                   database,
		Admins:               service.NewAdminAllowList(cfg.AdminEmails),
		Sessions:             sessions,
		AuthService:          authService,
		PasswordResetService: resetService,
		AccountService:       accountService,
		VideoService:         videoService,
		MediaService:         mediaService,
		AdminService:         adminService,
		EmailService:         emailService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
