package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitswalk/jobly/src/joblyctl/internal/client"
	"github.com/bitswalk/jobly/src/joblyctl/internal/config"
	"github.com/bitswalk/jobly/src/joblyctl/internal/output"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the joblyd server",
	Long:  `Exchanges a username and password for a token and stores it locally.`,
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Long:  `Registers a regular (non-admin) account and stores its token locally.`,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	Long:  `Removes the stored token. Tokens do not expire server side.`,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in identity",
	RunE:  runWhoami,
}

// stdin is read for prompts
var stdin io.Reader = os.Stdin

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Username")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when empty)")

	registerCmd.Flags().StringP("username", "u", "", "Username (required)")
	registerCmd.Flags().StringP("password", "p", "", "Password (prompted when empty)")
	registerCmd.Flags().String("first-name", "", "First name (required)")
	registerCmd.Flags().String("last-name", "", "Last name (required)")
	registerCmd.Flags().String("email", "", "Email address (required)")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("first-name")
	_ = registerCmd.MarkFlagRequired("last-name")
	_ = registerCmd.MarkFlagRequired("email")
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	input, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(input), nil
}

func promptPassword() (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	return prompt("Password: ")
}

func saveSession(username, token string) error {
	return config.Save(&config.Session{
		Token:     token,
		ServerURL: viper.GetString("server.url"),
		Username:  username,
	})
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if username == "" {
		if username, err = prompt("Username: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptPassword(); err != nil {
			return err
		}
	}

	c := getClient()
	token, err := c.Login(context.Background(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	c.Token = token

	if err := saveSession(username, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	serverURL := viper.GetString("server.url")
	return output.PrintFormatted(getOutputFormat(), map[string]string{
		"message":  "Login successful",
		"username": username,
		"server":   serverURL,
	}, func() error {
		output.PrintMessage(fmt.Sprintf("Logged in as %s on %s", username, serverURL))
		return nil
	})
}

func runRegister(cmd *cobra.Command, args []string) error {
	nu := client.NewUser{}
	nu.Username, _ = cmd.Flags().GetString("username")
	nu.Password, _ = cmd.Flags().GetString("password")
	nu.FirstName, _ = cmd.Flags().GetString("first-name")
	nu.LastName, _ = cmd.Flags().GetString("last-name")
	nu.Email, _ = cmd.Flags().GetString("email")

	if nu.Password == "" {
		var err error
		if nu.Password, err = promptPassword(); err != nil {
			return err
		}
	}

	c := getClient()
	token, err := c.Register(context.Background(), nu)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	c.Token = token

	if err := saveSession(nu.Username, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return output.PrintFormatted(getOutputFormat(), map[string]string{
		"message":  "Registered",
		"username": nu.Username,
	}, func() error {
		output.PrintMessage(fmt.Sprintf("Registered and logged in as %s", nu.Username))
		return nil
	})
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := config.Clear(); err != nil {
		return err
	}
	if apiClient != nil {
		apiClient.Token = ""
	}

	return output.PrintFormatted(getOutputFormat(), map[string]string{"message": "Logged out"}, func() error {
		output.PrintMessage("Logged out successfully.")
		return nil
	})
}

// identity is the payload joblyd signs into its tokens
type identity struct {
	Username string `json:"username" yaml:"username"`
	IsAdmin  bool   `json:"isAdmin" yaml:"isAdmin"`
	Server   string `json:"server" yaml:"server"`
}

// decodeIdentity reads the token payload without verifying the signature;
// the server does that on every request
func decodeIdentity(token string) (*identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("stored token is malformed: %w", err)
	}

	id := &identity{}
	id.Username, _ = claims["username"].(string)
	id.IsAdmin, _ = claims["isAdmin"].(bool)
	return id, nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	session, err := config.Load()
	if errors.Is(err, config.ErrNoSession) {
		return fmt.Errorf("not logged in, run 'joblyctl login' first")
	}
	if err != nil {
		return err
	}

	id, err := decodeIdentity(session.Token)
	if err != nil {
		return err
	}
	id.Server = session.ServerURL

	return output.PrintFormatted(getOutputFormat(), id, func() error {
		output.PrintTable(
			[]string{"FIELD", "VALUE"},
			[][]string{
				{"Username", id.Username},
				{"Admin", strconv.FormatBool(id.IsAdmin)},
				{"Server", id.Server},
			},
		)
		return nil
	})
}
