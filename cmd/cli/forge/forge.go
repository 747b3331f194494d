package forge

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crucial707/watchlist/cmd/cli/root"
	"github.com/crucial707/watchlist/internal/db"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
)

// OwnerName is the display name of the generated user.
const OwnerName = "brucechen"

// Movies is the fixture list inserted by forge, in insertion order.
var Movies = []models.Movie{
	{Title: "My Neighbor Totoro", Year: "1988"},
	{Title: "Dead Poets Society", Year: "1989"},
	{Title: "A Perfect World", Year: "1993"},
	{Title: "Leon", Year: "1994"},
	{Title: "Mahjong", Year: "1996"},
	{Title: "Swallowtail Butterfly", Year: "1996"},
	{Title: "King of Comedy", Year: "1999"},
	{Title: "Devils on the Doorstep", Year: "1999"},
	{Title: "WALL-E", Year: "2008"},
	{Title: "The Pork of Music", Year: "2012"},
}

type userCreator interface {
	Create(ctx context.Context, user *models.User) error
}

type movieCreator interface {
	Create(ctx context.Context, title, year string) (*models.Movie, error)
}

// ==========================
// Init forge
// ==========================
func InitForge(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "forge",
		Short: "Generate fake data",
		Long:  "Create the schema, then insert a display-only user and a fixed list of movies.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer root.CloseDB(gdb)

			if err := db.Migrate(gdb, false); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
			return Seed(cmd.Context(), repo.NewUserRepo(gdb), repo.NewMovieRepo(gdb), cmd.OutOrStdout())
		},
	})
}

// Seed inserts the fixture user and movies. The user has no credentials and
// cannot log in.
func Seed(ctx context.Context, users userCreator, movies movieCreator, out io.Writer) error {
	if err := users.Create(ctx, &models.User{Name: OwnerName}); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	for _, m := range Movies {
		if _, err := movies.Create(ctx, m.Title, m.Year); err != nil {
			return fmt.Errorf("create movie %q: %w", m.Title, err)
		}
	}
	fmt.Fprintln(out, "Done.")
	return nil
}
