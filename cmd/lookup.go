package cmd

import (
	"io"
	"strconv"
	"strings"

	"github.com/BitPonyLLC/logohue/pkg/corpus"

	"github.com/spf13/cobra"
)

var lookupOpts = analysisOptions{skipMissing: true, prominent: true}

func init() {
	lookupCmd.AddCommand(lookupRankCmd, lookupNameCmd)
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up the logo color of a ranked brand",
}

var lookupRankCmd = &cobra.Command{
	Use:   "rank YEAR RANK",
	Short: "Look up a brand and its logo color by rank",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, rank, err := parseYearAnd(args[0], args[1])
		if err != nil {
			return err
		}

		store, err := analyzeYear(cmd.Context(), year, lookupOpts)
		if err != nil {
			return err
		}

		entry, err := store.LookupByRank(rank)
		if err != nil {
			return fail(9, err)
		}

		cmd.Printf("The number %d most valuable brand in %d is: %s\n", entry.Rank, year, entry.Brand)
		return describe(cmd.OutOrStdout(), entry)
	},
}

var lookupNameCmd = &cobra.Command{
	Use:   "name YEAR BRAND...",
	Short: "Look up a brand's rank and logo color by name",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fail(2, "invalid year %q: %w", args[0], err)
		}

		store, err := analyzeYear(cmd.Context(), year, lookupOpts)
		if err != nil {
			return err
		}

		name := strings.Join(args[1:], " ")
		entry, err := store.LookupByName(name)
		if err != nil {
			return fail(10, err)
		}

		cmd.Printf("%s is ranked %d of %d in %d\n", entry.Brand, entry.Rank, store.Len(), year)
		return describe(cmd.OutOrStdout(), entry)
	},
}

func parseYearAnd(yearArg, rankArg string) (int, int, error) {
	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return 0, 0, fail(2, "invalid year %q: %w", yearArg, err)
	}

	rank, err := strconv.Atoi(rankArg)
	if err != nil {
		return 0, 0, fail(2, "invalid rank %q: %w", rankArg, err)
	}

	return year, rank, nil
}

func describe(w io.Writer, entry corpus.Entry) error {
	if entry.Err != nil {
		return fail(11, entry.Err)
	}

	_, err := io.WriteString(w, "Dominant color: "+entry.Result.Category.String()+"\n")
	if err != nil {
		return err
	}

	if entry.Prominent != "" {
		_, err = io.WriteString(w, "Prominent shade: #"+entry.Prominent+"\n")
	}

	return err
}
