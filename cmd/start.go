package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tag-manager/core/config"
	"tag-manager/core/database"
	"tag-manager/core/loader"
	"tag-manager/core/logger"
	"tag-manager/core/middleware/auth"
	"tag-manager/core/middleware/rayid"
	"tag-manager/core/storage"

	"tag-manager/feature/integrity"
	"tag-manager/feature/tags"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "tag-manager/docs/swagger"
)

// @title Tag Manager API
// @version 1.0
// @description API for importing and listing project tags.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tag manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional, the tags feature stays disabled without it)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 5. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		tagFeature := tags.NewFeature(store, cfg.Storage.Bucket, logg, db, cfg.Import)
		mgr.Register(tagFeature)
		var tagService *tags.Service
		if tagFeature.IsEnabled() {
			tagService = tagFeature.Service()
		}
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, logg, db, tagService))

		// RayID must be first to trace everything
		app.Use(rayid.New())
		app.Use(logger.Requests(logg))

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Everything below is protected
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			logg.Warn("Shutdown did not complete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
