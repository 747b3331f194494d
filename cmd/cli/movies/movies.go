package movies

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crucial707/watchlist/cmd/cli/output"
	"github.com/crucial707/watchlist/cmd/cli/root"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
)

type lister interface {
	List(ctx context.Context) ([]models.Movie, error)
}

// ==========================
// Init movies
// ==========================
func InitMovies(rootCmd *cobra.Command) {
	rootCmd.AddCommand(listMoviesCmd())
}

// ==========================
// LIST
// ==========================
func listMoviesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer root.CloseDB(gdb)
			return List(cmd.Context(), repo.NewMovieRepo(gdb), cmd.OutOrStdout(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

// List prints every movie in id order.
func List(ctx context.Context, movies lister, out io.Writer, asJSON bool) error {
	list, err := movies.List(ctx)
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}
	if asJSON {
		if list == nil {
			list = []models.Movie{}
		}
		return output.RenderJSON(out, list)
	}

	rows := make([][]interface{}, 0, len(list))
	for _, m := range list {
		rows = append(rows, []interface{}{m.ID, m.Title, m.Year})
	}
	output.RenderTable(out, []string{"ID", "Title", "Year"}, rows)
	fmt.Fprintf(out, "%d Titles\n", len(list))
	return nil
}
