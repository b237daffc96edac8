package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured protocol documents",
	Long:  `List the protocol documents the checker resolves, in check order, with the header each one generates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := resolveDocuments()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PROTOCOL\tHEADER\tPATH")
		for _, doc := range docs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", doc.Stem(), doc.HeaderName(), doc.Path)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
