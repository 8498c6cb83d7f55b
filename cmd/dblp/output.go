package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// TitleMaxLen caps titles in human-readable listings.
const TitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		enc := json.NewEncoder(os.Stderr)
		_ = enc.Encode(map[string]string{"error": msg})
	}
	os.Exit(code)
}

// truncate shortens a string for one-line listings.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
