package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/zittyzoom/internal/model"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the quick-search categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCategories(cmd.OutOrStdout())
	},
}

func writeCategories(out io.Writer) error {
	return render(out, model.Categories, func(out io.Writer) error {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKEYWORD")
		fmt.Fprintln(w, "--\t----\t-------")
		for _, c := range model.Categories {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Keyword)
		}
		return w.Flush()
	})
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
