package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/samplerev/internal/importer"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and import dropped CSV files",
	Long: `Watch a directory for CSV files and import each one once it has
settled. Files are considered settled after no write activity for the
configured debounce window. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&importInstance, "instance", "", "MinIO instance id (required)")
	watchCmd.Flags().StringVar(&importBucket, "bucket", "", "bucket to associate with imported samples")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importInstance == "" {
		return fmt.Errorf("--instance is required")
	}
	if _, err := uuid.Parse(importInstance); err != nil {
		return fmt.Errorf("invalid instance id %q: %w", importInstance, err)
	}

	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	watcher, err := importer.NewWatcher(args[0], time.Duration(cfg.WatchDebounceMS)*time.Millisecond)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s for CSV files (ctrl+c to stop)\n", args[0])
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopping")
			return nil
		case err := <-watcher.Errors():
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case path := <-watcher.Files():
			fmt.Printf("Importing %s\n", path)
			if err := importFile(ctx, client, path); err != nil {
				// One bad file should not stop the watch.
				fmt.Fprintf(os.Stderr, "import of %s failed: %v\n", path, err)
			}
		}
	}
}
