package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/samplerev/internal/api"
	"github.com/tessellate-ai/samplerev/internal/model"
)

var (
	samplesStatus string
	samplesBucket string
	samplesSearch string
	samplesSkip   int
	samplesLimit  int
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Inspect samples on the backend",
}

var samplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List samples",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		resp, err := client.ListSamples(cmd.Context(), api.SampleListOptions{
			Status: model.SampleStatus(samplesStatus),
			Bucket: samplesBucket,
			Search: samplesSearch,
			Skip:   samplesSkip,
			Limit:  samplesLimit,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFILE\tSTATUS\tANNOTATION\tTAGS")
		for _, s := range resp.Data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				s.ID, s.FileName, s.Status, s.AnnotationStatus, strings.Join(s.Tags, ","))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d of %d samples\n", len(resp.Data), resp.Count)
		return nil
	},
}

var samplesShowCmd = &cobra.Command{
	Use:   "show <sample-id>",
	Short: "Show one sample as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := uuid.Parse(args[0]); err != nil {
			return fmt.Errorf("invalid sample id %q: %w", args[0], err)
		}
		client, _, err := newClient()
		if err != nil {
			return err
		}
		sample, err := client.GetSample(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(sample, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	samplesListCmd.Flags().StringVar(&samplesStatus, "status", "", "filter by status (active, deleted, archived)")
	samplesListCmd.Flags().StringVar(&samplesBucket, "bucket", "", "filter by bucket")
	samplesListCmd.Flags().StringVar(&samplesSearch, "search", "", "substring match on file name")
	samplesListCmd.Flags().IntVar(&samplesSkip, "skip", 0, "offset into the listing")
	samplesListCmd.Flags().IntVar(&samplesLimit, "limit", 0, "page size (0 uses the configured default)")

	samplesCmd.AddCommand(samplesListCmd)
	samplesCmd.AddCommand(samplesShowCmd)
}
