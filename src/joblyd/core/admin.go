package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/bitswalk/jobly/src/joblyd/db/migrations"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long: `Create an administrator account directly in the database.

The password is read from --password, or prompted for without echo when
standard input is a terminal, or read from the first line of standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		email, _ := cmd.Flags().GetString("email")

		if password == "" {
			var err error
			password, err = readPassword(os.Stdin, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
		}

		cfg := LoadConfig()
		ctx := context.Background()
		database, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close()

		user, err := createAdmin(ctx, database, cfg.BcryptCost, db.NewUser{
			Username:  username,
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created administrator %s\n", user.Username)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and report the schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		database, err := openDatabase(ctx, LoadConfig().Database)
		if err != nil {
			return err
		}
		defer database.Close()

		runner := migrations.NewRunner(database.DB(), database.Dialect().Name)
		current, err := runner.CurrentVersion(ctx)
		if err != nil {
			return err
		}
		pending, err := runner.PendingCount(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d (%d pending)\n", current, pending)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().String("username", "admin", "Administrator username")
	createAdminCmd.Flags().String("password", "", "Administrator password (prompted when empty)")
	createAdminCmd.Flags().String("first-name", "Admin", "First name")
	createAdminCmd.Flags().String("last-name", "User", "Last name")
	createAdminCmd.Flags().String("email", "", "Email address")
	_ = createAdminCmd.MarkFlagRequired("email")
}

// readPassword prompts without echo on a terminal and otherwise reads one
// line from in
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	if term.IsTerminal(int(in.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	return readPasswordLine(in)
}

func readPasswordLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}

// createAdmin registers nu as an administrator
func createAdmin(ctx context.Context, database *db.Database, bcryptCost int, nu db.NewUser) (*db.User, error) {
	if len(nu.Password) < 5 {
		return nil, fmt.Errorf("password must be at least 5 characters")
	}
	nu.IsAdmin = true
	return db.NewUserRepository(database, bcryptCost).Register(ctx, nu)
}
