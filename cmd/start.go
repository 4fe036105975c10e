package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"source-manager/core/loader"
	"source-manager/core/logger"
	"source-manager/core/middleware/auth"
	"source-manager/core/middleware/rayid"
	"source-manager/core/volume"
	"source-manager/feature/datasource"
	"source-manager/feature/datasource/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "source-manager/docs/swagger"
)

// @title Source Manager API
// @version 1.0
// @description API for managing removable game library data sources.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the source manager server",
	Long: `Starts the HTTP server, initializes all enabled features and rescans
data sources whenever removable media are attached or removed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 1. Configuration, logger and data source manager
		a, err := bootstrap(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := a.cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}

		// 2. Initial scan
		if a.cfg.Server.ScanOnStart {
			if _, err := a.manager.ScanDataSources(ctx); err != nil {
				logg.Warn("Initial data source scan failed", zap.Error(err))
			}
		}

		// 3. Change notifications
		events, unsubscribe := a.manager.Subscribe()
		defer unsubscribe()
		go logEvents(logg, a.manager, events)

		// 4. Removable media watcher
		if a.cfg.Volume.Watch {
			watcher, err := volume.NewWatcher(a.cfg.Volume, logg, func() {
				if _, err := a.manager.ScanDataSources(ctx); err != nil {
					logg.Warn("Data source rescan failed", zap.Error(err))
				}
			})
			if err != nil {
				logg.Warn("Removable media watcher unavailable", zap.Error(err))
			} else {
				go watcher.Start(ctx)
			}
		}

		// 5. Fiber app
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(datasource.NewFeature(a.manager))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// logEvents reports registry changes until the subscription closes.
func logEvents(l *zap.Logger, m *datasource.Manager, events <-chan datasource.Event) {
	for e := range events {
		all := m.DataSources()
		fields := []zap.Field{zap.String("event", e.String()), zap.Int("total", len(all))}
		if e.Has(datasource.EventActiveChanged) {
			active := 0
			for _, ds := range all {
				if ds.Status == models.StatusActive {
					active++
				}
			}
			fields = append(fields, zap.Int("active", active))
		}
		l.Info("Data sources changed", fields...)
	}
}
