package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var datasetDescription string

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Manage datasets",
}

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		datasets, err := client.ListDatasets(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSAMPLES\tCREATED")
		for _, d := range datasets {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				d.ID, d.Name, d.SampleCount, d.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

var datasetsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		ds, err := client.CreateDataset(cmd.Context(), args[0], datasetDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Created dataset %s (%s)\n", ds.Name, ds.ID)
		return nil
	},
}

func init() {
	datasetsCreateCmd.Flags().StringVar(&datasetDescription, "description", "", "dataset description")

	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsCmd.AddCommand(datasetsCreateCmd)
}
