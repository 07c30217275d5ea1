package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tikz/vsdalign/uniprot"
	"github.com/tikz/vsdalign/view"
)

var candidatesFormat string

// candidatesCmd represents the candidates command
var candidatesCmd = &cobra.Command{
	Use:   "candidates <accession>",
	Short: "List the structures UniProt cross-references for an accession, experimental first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := uniprot.Discover(cmd.Context(), conf.Client(), args[0])
		if err != nil {
			return err
		}

		return view.Encode(cmd.OutOrStdout(), u, candidatesFormat)
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)

	candidatesCmd.Flags().StringVarP(&candidatesFormat, "format", "f", view.FormatJSON, "output format: json or yaml")
}
