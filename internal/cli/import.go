package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/samplerev/internal/api"
	"github.com/tessellate-ai/samplerev/internal/importer"
	"github.com/tessellate-ai/samplerev/internal/model"
)

const importPollInterval = 2 * time.Second

var (
	importInstance string
	importBucket   string
	importPreview  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import samples from a CSV file",
	Long: `Upload a CSV of object keys and tags to the backend and follow the
import task to completion. --preview inspects the file locally without
uploading anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importInstance, "instance", "", "MinIO instance id (required for upload)")
	importCmd.Flags().StringVar(&importBucket, "bucket", "", "bucket to associate with imported samples")
	importCmd.Flags().BoolVar(&importPreview, "preview", false, "inspect the CSV locally without uploading")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	if importPreview {
		preview, err := importer.PreviewFile(path)
		if err != nil {
			return err
		}
		printPreview(path, preview)
		return nil
	}

	if importInstance == "" {
		return fmt.Errorf("--instance is required")
	}
	if _, err := uuid.Parse(importInstance); err != nil {
		return fmt.Errorf("invalid instance id %q: %w", importInstance, err)
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	return importFile(cmd.Context(), client, path)
}

// importFile uploads one CSV and follows its task. Shared with the
// watch command.
func importFile(ctx context.Context, client *api.Client, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	task, err := client.StartImport(ctx, filepath.Base(path), data, importInstance, importBucket)
	if err != nil {
		return fmt.Errorf("starting import: %w", err)
	}
	fmt.Printf("Import task %s started (%d rows)\n", task.ID, task.TotalRows)

	task, err = followImport(ctx, client, task.ID)
	if err != nil {
		return err
	}
	printTask(task)
	if task.Status == model.ImportFailed {
		return fmt.Errorf("import %s failed", task.ID)
	}
	return nil
}

// followImport streams task progress over a websocket, falling back to
// polling when the socket cannot be established.
func followImport(ctx context.Context, client *api.Client, taskID string) (*model.ImportTask, error) {
	events, err := client.WatchImportTask(ctx, taskID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "live progress unavailable (%v), polling instead\n", err)
		return pollImport(ctx, client, taskID)
	}

	var last model.ImportTask
	for ev := range events {
		if ev.Err != "" {
			fmt.Fprintf(os.Stderr, "stream error: %s, polling instead\n", ev.Err)
			return pollImport(ctx, client, taskID)
		}
		last = ev.Task
		fmt.Printf("\r%d/%d rows", last.Progress, last.TotalRows)
	}
	fmt.Println()
	if !last.Status.Terminal() {
		// Stream ended early; confirm the final state.
		return pollImport(ctx, client, taskID)
	}
	return &last, nil
}

func pollImport(ctx context.Context, client *api.Client, taskID string) (*model.ImportTask, error) {
	ticker := time.NewTicker(importPollInterval)
	defer ticker.Stop()
	for {
		task, err := client.GetImportTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		fmt.Printf("\r%d/%d rows", task.Progress, task.TotalRows)
		if task.Status.Terminal() {
			fmt.Println()
			return task, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func printPreview(path string, p *importer.Preview) {
	fmt.Printf("%s: %d rows, %d columns\n", path, p.TotalRows, len(p.Columns))
	fmt.Printf("  columns:     %v\n", p.Columns)
	fmt.Printf("  images:      %d\n", p.ImageCount)
	fmt.Printf("  annotations: %d\n", p.AnnotationCount)
	fmt.Printf("  tags column: %v\n", p.HasTagsColumn)
	if len(p.RowErrors) > 0 {
		fmt.Printf("  %d row errors:\n", len(p.RowErrors))
		for _, e := range p.RowErrors {
			fmt.Printf("    %s\n", e)
		}
	}
}

func printTask(t *model.ImportTask) {
	fmt.Printf("Import %s: %s\n", t.ID, t.Status)
	fmt.Printf("  created: %d  skipped: %d  errors: %d\n", t.Created, t.Skipped, t.Errors)
	if t.AnnotationsLinked > 0 || t.TagsCreated > 0 {
		fmt.Printf("  annotations linked: %d  tags created: %d\n", t.AnnotationsLinked, t.TagsCreated)
	}
	for _, detail := range t.ErrorDetails {
		fmt.Printf("  error: %s\n", detail)
	}
}
