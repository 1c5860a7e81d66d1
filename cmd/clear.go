package cmd

import (
	"context"
	"log"

	"grail-monitor/core/config"
	"grail-monitor/core/database"
	"grail-monitor/core/logger"
	"grail-monitor/feature/detection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var clearYes bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all persisted grail progress",
	Long: `Removes every progress record from the database so the grail starts
over. Detection state in a running server is unaffected; restart it after
clearing.`,
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

		if !clearYes {
			logg.Warn("Refusing to clear without --yes")
			return
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		store := detection.NewStore(db)
		ctx := context.Background()

		count, err := store.Count(ctx)
		if err != nil {
			logg.Fatal("Failed to count progress records", zap.Error(err))
		}
		if err := store.DeleteAll(ctx); err != nil {
			logg.Fatal("Failed to delete progress records", zap.Error(err))
		}

		logg.Info("Grail progress cleared", zap.Int64("records", count))
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
	RootCmd.AddCommand(clearCmd)
}
