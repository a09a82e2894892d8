package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emotu/micro-cloud/internal/db/models"
	"github.com/emotu/micro-cloud/internal/db/repos"
)

func init() {
	credentialsCmd.AddCommand(createCredentialCmd)
	credentialsCmd.AddCommand(listCredentialsCmd)

	createCredentialCmd.Flags().StringP("name", "n", "", "name of the credential")
	createCredentialCmd.Flags().StringP("user-id", "u", "", "owner user id")
	_ = createCredentialCmd.MarkFlagRequired("name")
}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage API credentials",
}

// createCredentialCmd represents the command to create a credential
var createCredentialCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an API credential",
	Long:  `Create an API credential with freshly generated test and live keys.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		userID, _ := cmd.Flags().GetString("user-id")

		conn, err := connect()
		if err != nil {
			return err
		}

		cred := &models.Credential{Name: name, UserID: userID}
		store := repos.NewResource[models.Credential](conn)
		if err := store.Create(context.Background(), cred); err != nil {
			return fmt.Errorf("error creating credential: %w", err)
		}

		out, _ := json.MarshalIndent(cred, "", "  ")
		fmt.Println(string(out))
		return nil
	},
}

// listCredentialsCmd represents the command to list credentials
var listCredentialsCmd = &cobra.Command{
	Use:   "list",
	Short: "List API credentials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := connect()
		if err != nil {
			return err
		}

		store := repos.NewResource[models.Credential](conn)
		items, err := store.List(store.Query(context.Background()), 0, models.DefaultPerPage, "date_created DESC")
		if err != nil {
			return fmt.Errorf("error fetching credentials: %w", err)
		}

		out, _ := json.MarshalIndent(items, "", "  ")
		fmt.Println(string(out))
		return nil
	},
}
