package cmd

import (
	"context"
	"log"

	"grail-monitor/core/config"
	"grail-monitor/core/database"
	"grail-monitor/core/eventbus"
	"grail-monitor/core/logger"
	"grail-monitor/core/save"
	"grail-monitor/feature/catalog"
	"grail-monitor/feature/detection"
	"grail-monitor/feature/monitor"
	"grail-monitor/feature/stats"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Run one parse pass over the save directory",
	Long: `Parses every save file once, reports newly detected grail items and
prints the completion summary. Useful for manual game mode and scripting.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		var store *detection.Store
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, progress will not persist", zap.Error(err))
		} else {
			store = detection.NewStore(db)
			if err := store.Migrate(); err != nil {
				logg.Warn("Progress table migration failed", zap.Error(err))
				store = nil
			}
		}

		bus := eventbus.New(logg)

		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			logg.Fatal("Failed to load item catalog", zap.Error(err))
		}
		matcher := catalog.NewMatcher(cat)

		decoder := save.NewJSONDecoder()
		m := monitor.New(cfg.Monitor, logg, bus, decoder, decoder, matcher)
		svc := detection.NewService(logg, bus, matcher, store, m)
		m.SetAnalyzer(svc)

		ctx := context.Background()
		if err := svc.Hydrate(ctx); err != nil {
			logg.Warn("Failed to hydrate detection state", zap.Error(err))
		}

		bus.On(eventbus.TopicItemDetection, func(payload any) error {
			event, ok := payload.(detection.ItemDetectionPayload)
			if !ok {
				return nil
			}
			logg.Info("Grail item found",
				zap.String("name", event.GrailItem.Name),
				zap.Bool("ethereal", event.Item.Ethereal),
				zap.String("character", event.Item.Character),
				zap.String("location", event.Item.Location),
			)
			return nil
		})

		files := m.ParseAll(ctx)

		owned := stats.NewOwnership()
		for _, key := range svc.SeenKeys() {
			owned.Add(key.ItemID, key.Ethereal)
		}
		engine := stats.NewEngine(logg, cat)
		result := engine.Compute(owned, cfg.Grail)

		logg.Info("Parse pass complete",
			zap.Int("files", files),
			zap.Int("owned", result.Total.Owned),
			zap.Int("exists", result.Total.Exists),
			zap.Int("percent", result.Total.Percent),
		)
	},
}

func init() {
	RootCmd.AddCommand(parseCmd)
}
