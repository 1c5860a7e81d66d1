package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"grail-monitor/core/config"
	"grail-monitor/core/database"
	"grail-monitor/core/eventbus"
	"grail-monitor/core/loader"
	"grail-monitor/core/logger"
	"grail-monitor/core/middleware/auth"
	"grail-monitor/core/middleware/rayid"
	"grail-monitor/core/save"
	"grail-monitor/core/storage"

	"grail-monitor/feature/backup"
	"grail-monitor/feature/catalog"
	"grail-monitor/feature/detection"
	"grail-monitor/feature/monitor"
	"grail-monitor/feature/stats"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the grail monitor server",
	Long:  `Starts the HTTP server, begins watching the save directory and initializes all enabled features.`,
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

		// 3. Connect to Database (Optional)
		var store *detection.Store
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, progress will not persist", zap.Error(err))
		} else {
			store = detection.NewStore(db)
			if err := store.Migrate(); err != nil {
				logg.Warn("Progress table migration failed", zap.Error(err))
				store = nil
			} else {
				logg.Info("Connected to progress database", zap.String("driver", cfg.Database.Driver))
			}
		}

		// 4. Event Bus and Catalog
		bus := eventbus.New(logg)

		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			logg.Fatal("Failed to load item catalog", zap.Error(err))
		}
		matcher := catalog.NewMatcher(cat)
		logg.Info("Item catalog loaded", zap.Int("entries", cat.Len()))

		// 5. Initialize Storage
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Features
		decoder := save.NewJSONDecoder()
		monitorFeature := monitor.NewFeature(cfg.Monitor, logg, bus, decoder, decoder, matcher)

		detectionFeature := detection.NewFeature(logg, bus, matcher, store, monitorFeature.Monitor())
		monitorFeature.Monitor().SetAnalyzer(detectionFeature.Service())
		if err := detectionFeature.Service().Hydrate(context.Background()); err != nil {
			logg.Warn("Failed to hydrate detection state", zap.Error(err))
		}

		ownership := func() *stats.Ownership {
			o := stats.NewOwnership()
			for _, key := range detectionFeature.Service().SeenKeys() {
				o.Add(key.ItemID, key.Ethereal)
			}
			return o
		}
		statsFeature := stats.NewFeature(logg, cat, ownership, cfg.Grail)
		statsFeature.Engine().SetSoundTrigger(func() {
			logg.Info("New grail items found")
		})

		backupFeature := backup.NewFeature(client, cfg.Storage.Bucket, cfg.Backup, logg, bus)
		if cfg.Backup.Enabled {
			if err := backupFeature.Service().EnsureBucket(context.Background()); err != nil {
				logg.Warn("Backup bucket check failed", zap.Error(err))
			}
		}

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Prometheus Metrics (Public)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		mgr := loader.NewManager()
		mgr.Register(monitorFeature, detectionFeature, statsFeature, backupFeature)
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Begin Monitoring
		// A missing save directory is reported on the event bus and leaves
		// the monitor idle; the server still starts.
		if err := monitorFeature.Monitor().Start(); err != nil {
			logg.Error("Failed to start monitoring", zap.Error(err))
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		monitorFeature.Monitor().Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
