package main

import (
	"fmt"

	"meater/internal/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Login to Meater Cloud",
	Long:  `Prompts for your Meater Cloud password and stores the session token in the data directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]
		s := config.Current()

		var password string
		if err := askOneFunc(&survey.Password{
			Message: "Password:",
		}, &password, survey.WithValidator(survey.Required)); err != nil {
			return err
		}

		tok, err := newAPIClient(s, nil).Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		store := newCredentialStore(s)
		if err := store.Save(tok); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Token saved to %s\n", email, store.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
