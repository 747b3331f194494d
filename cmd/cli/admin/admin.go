package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/crucial707/watchlist/cmd/cli/prompt"
	"github.com/crucial707/watchlist/cmd/cli/root"
	"github.com/crucial707/watchlist/internal/db"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
)

// DefaultName is the display name given to a newly created admin.
const DefaultName = "Admin"

var validate = validator.New()

// Store is the user persistence admin needs.
type Store interface {
	First(ctx context.Context) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateCredentials(ctx context.Context, user *models.User) error
}

// ==========================
// Init admin
// ==========================
func InitAdmin(rootCmd *cobra.Command) {
	rootCmd.AddCommand(adminCmd())
}

func adminCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create or update the admin user",
		Long: `Create the schema, then set the login of the single site user.
Missing --username or --password values are prompted for; the password is
entered twice and never echoed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				creds, err := prompt.Ask(os.Stdin, cmd.ErrOrStderr(), username == "", password == "")
				if err != nil {
					return err
				}
				if username == "" {
					username = creds.Username
				}
				if password == "" {
					password = creds.Password
				}
			}

			gdb, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer root.CloseDB(gdb)

			if err := db.Migrate(gdb, false); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
			return Provision(cmd.Context(), repo.NewUserRepo(gdb), username, password, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "the username used to login")
	cmd.Flags().StringVar(&password, "password", "", "the password used to login")

	return cmd
}

// Provision updates the first user's credentials, or creates the user when the
// table is empty.
func Provision(ctx context.Context, users Store, username, password string, out io.Writer) error {
	if err := validate.Var(username, fmt.Sprintf("required,max=%d", models.MaxUsernameLen)); err != nil {
		return fmt.Errorf("username must be 1-%d characters", models.MaxUsernameLen)
	}
	if password == "" {
		return errors.New("password is required")
	}

	user, err := users.First(ctx)
	switch {
	case err == nil:
		fmt.Fprintln(out, "Updating user...")
		user.Username = username
		if err := user.SetPassword(password); err != nil {
			return err
		}
		if err := users.UpdateCredentials(ctx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
	case errors.Is(err, repo.ErrNotFound):
		fmt.Fprintln(out, "Creating user...")
		user = &models.User{Name: DefaultName, Username: username}
		if err := user.SetPassword(password); err != nil {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
	default:
		return fmt.Errorf("load user: %w", err)
	}

	fmt.Fprintln(out, "Done.")
	return nil
}
