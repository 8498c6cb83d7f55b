package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	publYears []int
	publVenue string
)

func init() {
	publCmd.Flags().IntSliceVar(&publYears, "year", nil, "Target year (repeatable)")
	publCmd.Flags().StringVar(&publVenue, "venue", "", "Restrict matches to this venue")
	_ = publCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(publCmd)
}

var publCmd = &cobra.Command{
	Use:   "publ <query>",
	Short: "Search publications across one or more years",
	Long: `Search publications, sweeping every result page for each target year.

Pages are fetched concurrently and continuation pages are discovered
from the server-reported totals. Result ordering across years and
pages is unspecified. If some pages fail, the hits that did load are
still printed and the command exits with the data error code.

Examples:
  dblp publ "model checking" --year 2019 --year 2020
  dblp publ "sat solving" --year 2021 --venue "SAT"`,
	Args: cobra.ExactArgs(1),
	RunE: runPubl,
}

func runPubl(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		exitWithError(ExitConfigError, "loading configuration: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	hits, sweepErr := client.SearchPublications(ctx, args[0], publYears, publVenue)
	if sweepErr != nil && len(hits) == 0 {
		exitWithError(ExitError, "publication search: %v", sweepErr)
	}

	if humanOutput {
		for _, hit := range hits {
			title, _ := hit["title"].(string)
			fmt.Printf("%s\n", truncate(title, TitleMaxLen))
		}
		fmt.Printf("%d publications\n", len(hits))
	} else {
		if err := outputJSON(hits); err != nil {
			return err
		}
	}

	if sweepErr != nil {
		fmt.Fprintf(os.Stderr, "warning: partial results: %v\n", sweepErr)
		os.Exit(ExitDataError)
	}
	return nil
}
