package main

import (
	"fmt"
	"os"

	"github.com/crucial707/watchlist/cmd/cli/admin"
	"github.com/crucial707/watchlist/cmd/cli/forge"
	"github.com/crucial707/watchlist/cmd/cli/initdb"
	"github.com/crucial707/watchlist/cmd/cli/movies"
	"github.com/crucial707/watchlist/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	initdb.InitInitDB(rootCmd)
	forge.InitForge(rootCmd)
	admin.InitAdmin(rootCmd)
	movies.InitMovies(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
