// Package commands implements the operational CLI. Commands talk to the
// database directly, so they run where the service configuration is
// available.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/emotu/micro-cloud/config"
	"github.com/emotu/micro-cloud/internal/db"
	"gorm.io/gorm"
)

// RootCmd is the base command of the CLI.
var RootCmd = &cobra.Command{
	Use:   "micro-cloud",
	Short: "micro-cloud CLI - operational commands for the micro-cloud API",
}

func init() {
	RootCmd.AddCommand(credentialsCmd)
	RootCmd.AddCommand(usersCmd)
}

// connect opens a database connection from the service settings.
func connect() (*gorm.DB, error) {
	settings := config.Load()
	return db.New(db.Options{
		Host:     settings.DBHost,
		Port:     settings.DBPort,
		User:     settings.DBUser,
		Password: settings.DBPassword,
		DBName:   settings.DBName,
	})
}
