package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bitswalk/jobly/src/joblyctl/internal/client"
	"github.com/bitswalk/jobly/src/joblyctl/internal/output"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users and job applications",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users (admin)",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userGetCmd = &cobra.Command{
	Use:   "get <username>",
	Short: "Show a user and their applications",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserGet,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user (admin)",
	Args:  cobra.NoArgs,
	RunE:  runUserCreate,
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <username>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserUpdate,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

var userApplyCmd = &cobra.Command{
	Use:   "apply <username> <job-id>",
	Short: "Apply a user to a job",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserApply,
}

var userUpdateFlags = []fieldFlag{
	{flag: "password", field: "password", usage: "New password"},
	{flag: "first-name", field: "firstName", usage: "First name"},
	{flag: "last-name", field: "lastName", usage: "Last name"},
	{flag: "email", field: "email", usage: "Email address"},
	{flag: "admin", field: "isAdmin", kind: kindBool, usage: "Administrator flag (admin only)"},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userApplyCmd)

	userCreateCmd.Flags().StringP("username", "u", "", "Username (required)")
	userCreateCmd.Flags().StringP("password", "p", "", "Password (prompted when empty)")
	userCreateCmd.Flags().String("first-name", "", "First name (required)")
	userCreateCmd.Flags().String("last-name", "", "Last name (required)")
	userCreateCmd.Flags().String("email", "", "Email address (required)")
	userCreateCmd.Flags().Bool("admin", false, "Create an administrator")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("first-name")
	_ = userCreateCmd.MarkFlagRequired("last-name")
	_ = userCreateCmd.MarkFlagRequired("email")

	registerFieldFlags(userUpdateCmd, userUpdateFlags)
}

func printUser(user *client.User) error {
	return output.PrintFormatted(getOutputFormat(), user, func() error {
		rows := [][]string{
			{"Username", user.Username},
			{"First name", user.FirstName},
			{"Last name", user.LastName},
			{"Email", user.Email},
			{"Admin", strconv.FormatBool(user.IsAdmin)},
		}
		if user.Jobs != nil {
			ids := make([]string, len(user.Jobs))
			for i, id := range user.Jobs {
				ids[i] = strconv.FormatInt(id, 10)
			}
			rows = append(rows, []string{"Applied to", strings.Join(ids, ", ")})
		}
		output.PrintTable([]string{"FIELD", "VALUE"}, rows)
		return nil
	})
}

func runUserList(cmd *cobra.Command, args []string) error {
	users, err := getClient().ListUsers(context.Background())
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), users, func() error {
		if len(users) == 0 {
			output.PrintMessage("No users found.")
			return nil
		}
		rows := make([][]string, len(users))
		for i, u := range users {
			admin := ""
			if u.IsAdmin {
				admin = "admin"
			}
			rows[i] = []string{u.Username, u.FirstName + " " + u.LastName, u.Email, admin}
		}
		output.PrintTable([]string{"USERNAME", "NAME", "EMAIL", "ROLE"}, rows)
		return nil
	})
}

func runUserGet(cmd *cobra.Command, args []string) error {
	user, err := getClient().GetUser(context.Background(), args[0])
	if err != nil {
		return err
	}
	return printUser(user)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	nu := client.NewUser{}
	nu.Username, _ = cmd.Flags().GetString("username")
	nu.Password, _ = cmd.Flags().GetString("password")
	nu.FirstName, _ = cmd.Flags().GetString("first-name")
	nu.LastName, _ = cmd.Flags().GetString("last-name")
	nu.Email, _ = cmd.Flags().GetString("email")
	nu.IsAdmin, _ = cmd.Flags().GetBool("admin")

	if nu.Password == "" {
		var err error
		if nu.Password, err = promptPassword(); err != nil {
			return err
		}
	}

	user, _, err := getClient().CreateUser(context.Background(), nu)
	if err != nil {
		return err
	}
	return printUser(user)
}

func runUserUpdate(cmd *cobra.Command, args []string) error {
	fields, err := updateFields(cmd, userUpdateFlags)
	if err != nil {
		return err
	}

	user, err := getClient().UpdateUser(context.Background(), args[0], fields)
	if err != nil {
		return err
	}
	return printUser(user)
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	if err := getClient().DeleteUser(context.Background(), args[0]); err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), map[string]string{"deleted": args[0]}, func() error {
		output.PrintMessage(fmt.Sprintf("User %s deleted.", args[0]))
		return nil
	})
}

func runUserApply(cmd *cobra.Command, args []string) error {
	id, err := parseJobID(args[1])
	if err != nil {
		return err
	}
	if err := getClient().Apply(context.Background(), args[0], id); err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), map[string]int64{"applied": id}, func() error {
		output.PrintMessage(fmt.Sprintf("%s applied to job %d.", args[0], id))
		return nil
	})
}
