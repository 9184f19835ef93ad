package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/samplerev/internal/api"
	"github.com/tessellate-ai/samplerev/internal/review"
	"github.com/tessellate-ai/samplerev/internal/tui"
)

var reviewStart int

var reviewCmd = &cobra.Command{
	Use:   "review <dataset-id>",
	Short: "Review a dataset's samples interactively",
	Long: `Open an interactive review session over every sample in the dataset.
Decisions are pushed to the backend as you make them; the cursor never
waits for the network.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := uuid.Parse(args[0]); err != nil {
			return fmt.Errorf("invalid dataset id %q: %w", args[0], err)
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		ds, err := client.GetDataset(ctx, args[0])
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		ids, err := client.ListDatasetSampleIDs(ctx, args[0])
		if err != nil {
			return fmt.Errorf("listing samples: %w", err)
		}
		if len(ids) == 0 {
			return fmt.Errorf("dataset %s has no samples to review", ds.Name)
		}

		items := make([]review.ItemID, len(ids))
		for i, id := range ids {
			items[i] = review.ItemID(id)
		}

		session, err := tui.Run(ctx, *ds, items, reviewStart, api.NewSessionRemote(client), client)
		if err != nil {
			return err
		}
		session.Wait()

		printSummary(ds.Name, session)
		return nil
	},
}

func init() {
	reviewCmd.Flags().IntVar(&reviewStart, "start", 0, "sample index to resume from")
}

func printSummary(dataset string, s *review.Session) {
	var kept, removed, skipped int
	for _, v := range s.Verdicts() {
		switch v {
		case review.DecisionKeep:
			kept++
		case review.DecisionRemove:
			removed++
		case review.DecisionSkip:
			skipped++
		}
	}
	pending := s.Len() - kept - removed - skipped

	fmt.Printf("\nReview of %s\n", dataset)
	fmt.Printf("  kept:    %d\n", kept)
	fmt.Printf("  removed: %d\n", removed)
	fmt.Printf("  skipped: %d\n", skipped)
	fmt.Printf("  pending: %d\n", pending)
}
