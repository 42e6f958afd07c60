package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/api"
	"github.com/wateringdiary/webapp/internal/apiclient"
	"github.com/wateringdiary/webapp/internal/cli"
	"github.com/wateringdiary/webapp/internal/config"
	"github.com/wateringdiary/webapp/internal/db"
	"github.com/wateringdiary/webapp/internal/i18n"
	"github.com/wateringdiary/webapp/internal/logging"
	"github.com/wateringdiary/webapp/internal/security"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "wateringdiary",
		Short:         "Watering diary web frontend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("WD_CONFIG"), "path to a TOML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		newSessionsCommand(&configPath),
		&cobra.Command{
			Use:   "check-api",
			Short: "Verify that the REST API is reachable",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := loadRuntime(configPath)
				if err != nil {
					return err
				}
				defer logger.Sync() //nolint:errcheck
				client, err := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, apiclient.WithLogger(logger))
				if err != nil {
					return err
				}
				return cli.RunCheckAPICommand(cmd.Context(), client, logger, cmd.OutOrStdout())
			},
		},
		newGenSecretCommand(),
	)
	return root
}

func newSessionsCommand(configPath *string) *cobra.Command {
	sessions := &cobra.Command{
		Use:   "sessions",
		Short: "Maintain stored browser sessions",
	}

	var login string
	revoke := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke every session of a login",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return cli.RunRevokeSessionsCommand(cmd.Context(), cfg.DBPath, login, logger, cmd.OutOrStdout())
		},
	}
	revoke.Flags().StringVar(&login, "login", "", "login whose sessions are revoked")
	_ = revoke.MarkFlagRequired("login")

	sessions.AddCommand(
		&cobra.Command{
			Use:   "prune",
			Short: "Delete expired and revoked sessions",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := loadRuntime(*configPath)
				if err != nil {
					return err
				}
				defer logger.Sync() //nolint:errcheck
				return cli.RunPruneSessionsCommand(cmd.Context(), cfg.DBPath, logger, cmd.OutOrStdout())
			},
		},
		revoke,
	)
	return sessions
}

func newGenSecretCommand() *cobra.Command {
	var length int
	command := &cobra.Command{
		Use:   "gen-secret",
		Short: "Print a random value for secret_key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerateSecretCommand(length, cmd.OutOrStdout())
		},
	}
	command.Flags().IntVar(&length, "length", security.DefaultSecretKeyLength, "key length")
	return command
}

func loadRuntime(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return nil, nil, errors.Wrap(err, "config init failed")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, errors.Wrap(err, "logger init failed")
	}
	return cfg, logger, nil
}

func runServe(ctx context.Context, configPath string) error {
	cfg, logger, err := loadRuntime(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return errors.Wrap(err, "database init failed")
	}
	defer db.Close(database)
	repositories := db.NewRepositories(database)

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, cfg.LocalesDir)
	if err != nil {
		return errors.Wrap(err, "i18n init failed")
	}

	client, err := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, apiclient.WithLogger(logger))
	if err != nil {
		return errors.Wrap(err, "api client init failed")
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		API:          client,
		Sessions:     repositories.Sessions,
		I18n:         i18nManager,
		Logger:       logger,
		SecretKey:    cfg.SecretKey,
		TemplateDir:  cfg.TemplateDir,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		FanOutLimit:  cfg.FanOutLimit,
	})
	if err != nil {
		return errors.Wrap(err, "handler init failed")
	}

	app := newApp(handler, cfg, logger)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("watering diary listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("api", client.BaseURL()),
		zap.String("db", cfg.DBPath),
		zap.String("tz", cfg.Location.String()),
	)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		return errors.Wrap(err, "server exited")
	}
	return nil
}

func newApp(handler *api.Handler, cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Watering Diary",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(api.RequestLogger(logger))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	app.Static("/static", cfg.StaticDir)
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     api.CSRFCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     api.CSRFContextKey,
	}
}
