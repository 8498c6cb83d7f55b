package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/dblp/internal/dblp"
)

var authorAffiliation string

func init() {
	authorCmd.Flags().StringVar(&authorAffiliation, "affiliation", "", "Restrict matches to this affiliation")
	rootCmd.AddCommand(authorCmd)
}

var authorCmd = &cobra.Command{
	Use:   "author <name>",
	Short: "Search authors by name and load their profiles",
	Long: `Search authors by name and load each matching profile.

Matches are resolved concurrently; a hit that fails to resolve is
dropped and the remaining matches are returned in hit order.

Examples:
  dblp author "Donald E. Knuth"
  dblp author "Jane Doe" --affiliation "MIT"`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthor,
}

// authorOutput is the per-author JSON shape for the author command.
type authorOutput struct {
	Key string `json:"key"`
	*dblp.AuthorRecord
}

func runAuthor(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		exitWithError(ExitConfigError, "loading configuration: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	authors, err := client.SearchAuthors(ctx, args[0], authorAffiliation)
	if err != nil {
		exitWithError(ExitError, "author search: %v", err)
	}

	out := make([]authorOutput, 0, len(authors))
	for _, a := range authors {
		rec, err := a.Record(ctx)
		if err != nil {
			// Already loaded by the driver; a failure here means the
			// context was cancelled mid-listing.
			continue
		}
		out = append(out, authorOutput{Key: a.Key(), AuthorRecord: rec})
	}

	if humanOutput {
		for _, o := range out {
			fmt.Printf("%s  (%s)  %d publications\n", o.Name, o.Key, len(o.Publications))
		}
		return nil
	}
	return outputJSON(out)
}
