package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/poliklinik-admin/config"
	"github.com/c14220110/poliklinik-admin/internal/common/middlewares"
	"github.com/c14220110/poliklinik-admin/internal/notify"
	"github.com/c14220110/poliklinik-admin/internal/routes"
	"github.com/c14220110/poliklinik-admin/internal/staff/controllers"
	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/internal/staff/services"
	"github.com/c14220110/poliklinik-admin/pkg/storage/mariadb"
	"github.com/c14220110/poliklinik-admin/ws"
)

const devAdminPassword = "admin"

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin console server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, a)
		},
	}
}

// credentials fills the login secrets. Outside development ValidateServer
// already guarantees both are configured.
func credentials(a *app) (controllers.Credentials, error) {
	cfg := a.cfg
	creds := controllers.Credentials{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       []byte(cfg.JWTSecret),
		TTL:          cfg.TokenTTL,
	}
	if len(creds.Secret) == 0 {
		creds.Secret = []byte(uuid.NewString() + uuid.NewString())
		a.logger.Warn().Msg("JWT_SECRET not set, using a random secret; tokens end with the process")
	}
	if creds.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(devAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return creds, fmt.Errorf("hash default password: %w", err)
		}
		creds.PasswordHash = string(hash)
		a.logger.Warn().Str("username", cfg.AdminUsername).Msg("ADMIN_PASSWORD_HASH not set, default password is \"admin\"")
	}
	return creds, nil
}

func openActivityStore(ctx context.Context, cfg *config.Config) (*mariadb.ActivityStore, func() error, error) {
	db, err := mariadb.Connect(ctx, mariadb.Options{
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		return nil, nil, err
	}
	store := mariadb.NewActivityStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db.Close, nil
}

func runServer(ctx context.Context, a *app) error {
	cfg := a.cfg
	logger := a.logger
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	creds, err := credentials(a)
	if err != nil {
		return err
	}

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	observers := []notify.Observer{notify.Log(logger), notify.Broadcast(hub, logger)}
	var activity *controllers.ActivityController
	if cfg.ActivityLogEnabled() {
		store, closeDB, err := openActivityStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("activity log: %w", err)
		}
		defer closeDB()
		observers = append(observers, notify.Record(store, logger))
		activity = controllers.NewActivityController(store)
		logger.Info().Str("host", cfg.DBHost).Msg("activity log enabled")
	}
	notifier := notify.Tee(notify.Scoped{}, observers...)

	client, err := a.client()
	if err != nil {
		return err
	}
	catalog, err := services.NewCatalog(client, notifier, logger)
	if err != nil {
		return err
	}
	profile := services.NewProfileService(models.AdminProfile{
		Username: cfg.AdminUsername,
		Fullname: cfg.AdminFullname,
		Email:    cfg.AdminEmail,
	}, notifier)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewares.Recovery(logger))
	e.Use(middlewares.RequestID())
	e.Use(middlewares.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middlewares.RequestIDHeader},
	}))

	routes.Init(e, routes.Deps{
		Secret:   creds.Secret,
		Catalog:  catalog,
		Auth:     controllers.NewAuthController(creds, profile),
		Account:  controllers.NewAccountController(services.NewRegistrationService(client, notifier, logger), profile),
		Activity: activity,
		Hub:      hub,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("api", cfg.APIBaseURL).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
