package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var email string
	var server string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the backend",
		Long:  "Sign in with email and password. On success, records owned by the account are loaded from the backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, email, server)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted if omitted)")
	cmd.Flags().StringVar(&server, "server", "", "backend URL (saved to config when set)")

	return cmd
}

func runLogin(cmd *cobra.Command, email, serverFlag string) error {
	if serverFlag != "" {
		// Load existing config to preserve other fields
		cfg, err := loadConfig()
		if err != nil {
			cfg = CLIConfig{}
		}
		cfg.ServerURL = serverFlag
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	if err := requireServer(); err != nil {
		return err
	}

	email, password, err := promptCredentials(email)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.SignIn(cmd.Context(), email, password); err != nil {
		return err
	}

	fmt.Printf("✓ Logged in as %s\n", email)
	return nil
}
