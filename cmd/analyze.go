package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/BitPonyLLC/logohue/pkg/corpus"

	"github.com/spf13/cobra"
)

var analyzeOpts = analysisOptions{}
var analyzeList bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeOpts.skipMissing, "skip-missing", false, "leave out logos that cannot be read instead of failing")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.prominent, "prominent", false, "also find the prominent shade of every logo")
	analyzeCmd.Flags().BoolVar(&analyzeList, "list", false, "list every brand with its logo color before the summary")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze YEAR",
	Short: "Analyze every logo of a year's ranking and summarize the colors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fail(2, "invalid year %q: %w", args[0], err)
		}

		opts := analyzeOpts
		opts.progress = progressWriter()

		store, err := analyzeYear(cmd.Context(), year, opts)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout())
		if analyzeList {
			listEntries(cmd.OutOrStdout(), store)
			fmt.Fprintln(cmd.OutOrStdout())
		}

		return report(cmd.OutOrStdout(), year, store)
	},
}

func listEntries(w io.Writer, store *corpus.Store) {
	for _, e := range store.Entries() {
		switch {
		case e.Err != nil:
			fmt.Fprintf(w, "%4d  %-30s  not analysed: %v\n", e.Rank, e.Brand, e.Err)
		case e.Prominent != "":
			fmt.Fprintf(w, "%4d  %-30s  %s #%s\n", e.Rank, e.Brand, e.Result.Category, e.Prominent)
		default:
			fmt.Fprintf(w, "%4d  %-30s  %s\n", e.Rank, e.Brand, e.Result.Category)
		}
	}
}
