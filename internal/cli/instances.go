package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "Inspect MinIO instances",
}

var instancesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered MinIO instances",
	Long: `List the MinIO instances registered on the backend. The import and
watch commands take one of these ids via --instance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		instances, err := client.ListInstances(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tENDPOINT\tACTIVE")
		for _, in := range instances {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", in.ID, in.Name, in.Endpoint, in.IsActive)
		}
		return w.Flush()
	},
}

func init() {
	instancesCmd.AddCommand(instancesListCmd)
}
