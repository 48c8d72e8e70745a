package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/feature/crm"
	"catalog-sync/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-sync/docs/swagger"
)

// @title Catalog Sync API
// @version 1.0
// @description Inventory reconciliation with WooCommerce and the WhatsApp CRM webhook.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts the HTTP server with the inventory sync API and the CRM webhook.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg, err := loadRuntime()
		if err != nil {
			log.Fatal(err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx := context.Background()

		// Optional: without it sync runs fail with data_source_error and the CRM is off
		db := connectDatabase(cfg.Database, logg)

		publisher := newPublisher(cfg.Events, logg)
		defer publisher.Close()

		var syncService *inventory.Service
		if err := cfg.ValidateSync(); err != nil {
			logg.Warn("Inventory sync disabled", zap.Error(err))
		} else if syncService, err = newSyncService(ctx, cfg, logg, db, publisher); err != nil {
			logg.Fatal("Failed to initialize inventory sync", zap.Error(err))
		}

		var crmService *crm.Service
		switch {
		case db == nil:
			logg.Warn("CRM webhook disabled: no database")
		case cfg.CRM.VerifyToken == "":
			logg.Warn("CRM webhook disabled: CRM_VERIFY_TOKEN is empty")
		default:
			crmService = crm.NewService(db, nil, publisher, cfg.CRM, logg.Named("crm"))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout:          time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(inventory.NewFeature(syncService, logg))
		mgr.Register(crm.NewFeature(crmService, logg))

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request handled", fields...)
			return nil
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		// Meta calls the webhook without our API key
		app.Use(auth.New(auth.Config{
			ApiKey:         cfg.Server.ApiKey,
			PublicPrefixes: []string{"/webhook", "/swagger"},
		}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty, API routes are unauthenticated")
		}

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			logg.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
