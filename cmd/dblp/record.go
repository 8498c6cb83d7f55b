package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/dblp/internal/dblp"
)

func init() {
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record <key>",
	Short: "Fetch one publication record by key",
	Long: `Fetch a single publication record by its DBLP key.

Examples:
  dblp record journals/cacm/Knuth74
  dblp record conf/focs/HopcroftPV75`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		exitWithError(ExitConfigError, "loading configuration: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	rec, err := client.Publication(args[0]).Record(ctx)
	if err != nil {
		if dblp.IsNotFound(err) {
			exitWithError(ExitDataError, "no record for key %q", args[0])
		}
		exitWithError(ExitError, "fetching record: %v", err)
	}

	if humanOutput {
		fmt.Printf("%s (%s, %d)\n", truncate(rec.Title, TitleMaxLen), rec.Type, rec.Year)
		for _, a := range rec.Authors {
			fmt.Printf("  %s\n", a)
		}
		return nil
	}
	return outputJSON(rec)
}
