package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tikz/vsdalign/pipeline"
	"github.com/tikz/vsdalign/store"
	"github.com/tikz/vsdalign/superpose"
)

var alignSource string

// alignCmd represents the align command
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Superpose the structures of every alignment onto its reference and store them",
	Long: `Superpose the structures of every alignment onto its reference and store them

For each UniProt alignment the stored candidate structures are tried in order, experimental
structures first, until one is downloaded, cut to the chain containing the aligned sequence,
superposed and stored. FoldSeek hits are cut to their aligned residue range.

A failing entry is reported and never stops the others. Rerunning overwrites previous results.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := sourceKinds(alignSource)
		if err != nil {
			return err
		}

		water, err := conf.Water()
		if err != nil {
			return err
		}

		return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
			client := conf.Client()
			p := &pipeline.Processor{
				Store:    st,
				Fetcher:  client,
				Aligner:  superpose.NewAligner(),
				Finder:   &pipeline.UniProtFinder{Getter: client},
				Discover: conf.Discover,
				Water:    water,
				Workers:  conf.Workers,
				Logger:   conf.Logger(cmd.ErrOrStderr()),
			}

			entries, err := p.Entries(ctx, kinds...)
			if err != nil {
				return err
			}

			var failed, transient int
			for _, r := range p.Run(ctx, entries) {
				if r.OK() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Entry.Key, r.State, r.Provenance)
					continue
				}
				failed++
				if r.Transient() {
					transient++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s at %s\t%v\n", r.Entry.Key, r.State, r.FailedAt, r.Err)
			}

			if transient > 0 {
				return fmt.Errorf("%d of %d entries failed, %d after exhausting download retries", failed, len(entries), transient)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d entries failed", failed, len(entries))
			}
			return nil
		})
	},
}

// sourceKinds parses the --source flag, "all" selects every source.
func sourceKinds(s string) ([]store.Kind, error) {
	if s == "" || s == "all" {
		return store.Kinds, nil
	}
	k, err := store.ParseKind(s)
	if err != nil {
		return nil, err
	}
	return []store.Kind{k}, nil
}

func init() {
	rootCmd.AddCommand(alignCmd)

	alignCmd.Flags().StringVarP(&alignSource, "source", "s", "all", "alignments to process: uniprot, foldseek or all")
	alignCmd.Flags().Int("workers", pipeline.DefaultWorkers, "entries processed concurrently")
	alignCmd.Flags().Bool("discover", false, "look up UniProt for structures when an accession has none stored")
	alignCmd.Flags().String("water", "", "PDB file with water molecules, used when an alignment has no reference")

	viper.BindPFlag("workers", alignCmd.Flags().Lookup("workers"))
	viper.BindPFlag("discover", alignCmd.Flags().Lookup("discover"))
	viper.BindPFlag("reference.water", alignCmd.Flags().Lookup("water"))
}
