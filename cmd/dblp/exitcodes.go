package main

// Exit codes used by the dblp CLI.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config)
	ExitDataError   = 3 // Data error (record not found, partial search results)
)
