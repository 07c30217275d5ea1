package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tikz/vsdalign/store"
)

var listSource string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the alignments that have a superposed structure and validated zones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := sourceKinds(listSource)
		if err != nil {
			return err
		}

		return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, kind := range kinds {
				rows, err := st.Selectable(ctx, kind)
				if err != nil {
					return err
				}
				for _, r := range rows {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.Key, r.Label, r.Name)
				}
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listSource, "source", "s", "all", "alignments to list: uniprot, foldseek or all")
}
