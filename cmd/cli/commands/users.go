package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emotu/micro-cloud/internal/db/repos"
)

func init() {
	usersCmd.AddCommand(getUserCmd)
	usersCmd.AddCommand(suspendUserCmd)

	getUserCmd.Flags().StringP("username", "u", "", "email or phone of the user")
	_ = getUserCmd.MarkFlagRequired("username")

	suspendUserCmd.Flags().StringP("username", "u", "", "email or phone of the user")
	_ = suspendUserCmd.MarkFlagRequired("username")
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

// getUserCmd represents the command to look up a user
var getUserCmd = &cobra.Command{
	Use:   "get",
	Short: "Look up a user by email or phone",
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, _ := cmd.Flags().GetString("username")

		conn, err := connect()
		if err != nil {
			return err
		}

		user, err := repos.NewUserRepository(conn).FindByUsername(context.Background(), username)
		if err != nil {
			return fmt.Errorf("error fetching user: %w", err)
		}

		out, _ := json.MarshalIndent(user, "", "  ")
		fmt.Println(string(out))
		return nil
	},
}

// suspendUserCmd represents the command to suspend a user account
var suspendUserCmd = &cobra.Command{
	Use:   "suspend",
	Short: "Suspend a user account",
	Long:  `Suspend a user account. Suspended accounts fail bearer authentication.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, _ := cmd.Flags().GetString("username")

		conn, err := connect()
		if err != nil {
			return err
		}

		repo := repos.NewUserRepository(conn)
		user, err := repo.FindByUsername(context.Background(), username)
		if err != nil {
			return fmt.Errorf("error fetching user: %w", err)
		}

		user.IsSuspended = true
		if err := repo.Save(context.Background(), user); err != nil {
			return fmt.Errorf("error suspending user: %w", err)
		}

		fmt.Printf("user %s suspended\n", user.Email)
		return nil
	},
}
