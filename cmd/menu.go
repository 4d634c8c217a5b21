package cmd

import (
	"context"

	"github.com/BitPonyLLC/logohue/internal/menu"
	"github.com/BitPonyLLC/logohue/pkg/corpus"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var menuOpts = analysisOptions{prominent: true}

func init() {
	menuCmd.Flags().BoolVar(&menuOpts.skipMissing, "skip-missing", false, "leave out logos that cannot be read instead of failing")
	rootCmd.AddCommand(menuCmd)
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose a year and explore its logo colors interactively",
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := menuOpts
		opts.progress = progressWriter()

		m := &menu.Menu{
			Years: rankingYears(),
			Analyze: func(ctx context.Context, year int) (*corpus.Store, error) {
				return analyzeYear(ctx, year, opts)
			},
			Report: report,
			In:     cmd.InOrStdin(),
			Out:    cmd.OutOrStdout(),
		}

		return m.Run(cmd.Context(), &log.Logger)
	},
}
