package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tikz/vsdalign/alignment"
	"github.com/tikz/vsdalign/store"
	"github.com/tikz/vsdalign/view"
)

var (
	showFormat string
	showZones  []int64
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <uniprot|foldseek> <id>",
	Short: "Show an alignment with its zones mapped onto the superposed structure",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := store.ParseKind(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[1], err)
		}
		key := store.Key{Kind: kind, ID: id}

		return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
			d, err := alignment.NewAggregator(st).Detail(ctx, key)
			if errors.Is(err, alignment.ErrNotFound) {
				return fmt.Errorf("%s: no such alignment", key)
			}
			if err != nil {
				return err
			}

			v, err := view.Build(d, view.Options{Mismatch: conf.Mismatch, Zones: showZones})
			if err != nil {
				return err
			}

			return view.Encode(cmd.OutOrStdout(), v, showFormat)
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showFormat, "format", "f", view.FormatJSON, "output format: json or yaml")
	showCmd.Flags().Int64SliceVarP(&showZones, "zones", "z", nil, "zone numbers to highlight, e.g. 1,3")
	showCmd.Flags().String("mismatch", "*", "match symbol that flags a mutated residue")

	viper.BindPFlag("mismatch", showCmd.Flags().Lookup("mismatch"))
}
