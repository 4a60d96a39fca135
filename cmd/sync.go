package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hood-sync/core/config"
	"hood-sync/core/database"
	"hood-sync/core/logger"
	"hood-sync/core/storage"
	"hood-sync/feature/hood"
	"hood-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRun bool

// syncCmd runs one synchronization and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one feed synchronization",
	Long:  `Fetches the merchant CSV feed once and upserts every product into the marketplace.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		// 3. Validate Configuration
		// Missing credentials or feed URL must surface before any network call.
		if err := cfg.Validate(); err != nil {
			logg.Error("Configuration invalid", zap.Error(err))
			return err
		}

		// 4. Assemble the Service
		service := buildService(cfg, logg)

		// 5. Run
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stats, err := service.RunSync(ctx, dryRun)
		if err != nil {
			return err
		}

		if stats.Errors > 0 {
			logg.Warn("Run finished with row errors", zap.Int("errors", stats.Errors))
		}
		return nil
	},
}

// buildService assembles the sync service with its optional collaborators.
// Journal and archive degrade to warnings; the core loop never depends on
// either.
func buildService(cfg *config.Config, logg *zap.Logger) *sync.Service {
	// Optional run journal, opt-in so a default configuration never dials a
	// database.
	var journal *sync.Journal
	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Journal database connection failed", zap.Error(err))
		} else {
			j := sync.NewJournal(conn, logg)
			if err := j.Prepare(); err != nil {
				logg.Warn("Failed to prepare journal table", zap.Error(err))
			} else {
				journal = j
				logg.Info("Run journal enabled")
			}
		}
	}

	// Optional audit archive.
	var archive *sync.Archive
	var sink hood.AuditSink
	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Failed to create storage client, audit archive disabled", zap.Error(err))
		} else {
			a := sync.NewArchive(store, cfg.Storage.Bucket, logg)
			if err := a.Prepare(context.Background()); err != nil {
				logg.Warn("Failed to prepare audit bucket, audit archive disabled", zap.Error(err))
			} else {
				archive = a
				sink = a
				logg.Info("Audit archive enabled", zap.String("bucket", cfg.Storage.Bucket))
			}
		}
	}

	client := hood.NewClient(cfg.Hood, logg, sink)
	return sync.NewService(cfg.Feed, client, logg, journal, archive)
}

func init() {
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "map and count feed rows without calling the marketplace")
	RootCmd.AddCommand(syncCmd)
}
