package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear local data",
		Long:  "Sign out of the backend. In-memory and locally stored records are cleared so nothing owned by the account remains on this device.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd)
		},
	}
}

func runLogout(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.session.Current() == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := a.session.SignOut(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("✓ Logged out. Local data cleared.")
	return nil
}
