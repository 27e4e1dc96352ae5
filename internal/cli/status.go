package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and data status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.store.Load(cmd.Context())

	u := a.session.Current()

	if isJSON() {
		out := map[string]interface{}{
			"signed_in":  u != nil,
			"server":     getServerURL(),
			"properties": a.store.Properties.Len(),
			"tenants":    a.store.Tenants.Len(),
			"payments":   a.store.Payments.Len(),
			"checklists": a.store.Checklists.Len(),
			"comments":   a.store.Comments.Len(),
		}
		if u != nil {
			out["email"] = u.Email
		}
		return printJSON(out)
	}

	if u != nil {
		fmt.Printf("Logged in as %s\n", u.Email)
	} else {
		fmt.Println("Not logged in — using local storage only.")
	}
	if s := getServerURL(); s != "" {
		fmt.Printf("Backend: %s\n", s)
	}
	fmt.Printf("Properties: %d  Tenants: %d  Payments: %d  Checklists: %d  Comments: %d\n",
		a.store.Properties.Len(), a.store.Tenants.Len(), a.store.Payments.Len(),
		a.store.Checklists.Len(), a.store.Comments.Len())

	return nil
}
