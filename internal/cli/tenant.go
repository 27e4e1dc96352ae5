package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/tenant"
)

func newTenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}

	cmd.AddCommand(
		newTenantAddCmd(),
		newTenantListCmd(),
		newTenantShowCmd(),
		newTenantUpdateCmd(),
		newTenantRemoveCmd(),
	)

	return cmd
}

func tenantFlags(cmd *cobra.Command, t *tenant.Tenant) {
	cmd.Flags().StringVar(&t.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&t.Email, "email", "", "email address")
	cmd.Flags().StringVar(&t.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&t.PropertyID, "property", "", "property id")
	cmd.Flags().StringVar(&t.LeaseStart, "lease-start", "", "lease start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&t.LeaseEnd, "lease-end", "", "lease end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&t.DoorCode, "door-code", "", "door code")
	cmd.Flags().StringVar(&t.SpecialRequests, "special-requests", "", "special requests")
}

func newTenantAddCmd() *cobra.Command {
	var t tenant.Tenant

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Tenants.Add(cmd.Context(), &t)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Added tenant %s (%s)\n", saved.FullName, saved.ID)
			return nil
		},
	}

	tenantFlags(cmd, &t)
	return cmd
}

func newTenantListCmd() *cobra.Command {
	var propertyID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			tenants := a.store.Tenants.Items()
			if propertyID != "" {
				filtered := tenants[:0:0]
				for _, t := range tenants {
					if t.PropertyID == propertyID {
						filtered = append(filtered, t)
					}
				}
				tenants = filtered
			}

			if isJSON() {
				return printJSON(tenants)
			}
			return printTenantTable(tenants, a.snapshot())
		},
	}

	cmd.Flags().StringVar(&propertyID, "property", "", "filter by property id")

	return cmd
}

func newTenantShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			t, ok := a.store.Tenants.Get(args[0])
			if !ok {
				return fmt.Errorf("tenant %s not found", args[0])
			}

			if isJSON() {
				return printJSON(t)
			}
			return printTenantTable([]*tenant.Tenant{t}, a.snapshot())
		},
	}
}

func newTenantUpdateCmd() *cobra.Command {
	var t tenant.Tenant

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a tenant",
		Long:  "Update a tenant. Only the flags you set are changed; every other field is preserved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			setIfChanged(cmd, patch, "name", t.FullName)
			setIfChanged(cmd, patch, "email", t.Email)
			setIfChanged(cmd, patch, "phone", t.Phone)
			setIfChanged(cmd, patch, "property", t.PropertyID)
			setIfChanged(cmd, patch, "lease-start", t.LeaseStart)
			setIfChanged(cmd, patch, "lease-end", t.LeaseEnd)
			setIfChanged(cmd, patch, "door-code", t.DoorCode)
			setIfChanged(cmd, patch, "special-requests", t.SpecialRequests)
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: set at least one field flag")
			}
			renameKeys(patch, map[string]string{
				"name":             "fullName",
				"property":         "propertyId",
				"lease-start":      "leaseStart",
				"lease-end":        "leaseEnd",
				"door-code":        "doorCode",
				"special-requests": "specialRequests",
			})

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Tenants.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Updated tenant %s\n", saved.ID)
			return nil
		},
	}

	tenantFlags(cmd, &t)
	return cmd
}

func newTenantRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			if err := a.store.Tenants.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Removed tenant %s\n", args[0])
			return nil
		},
	}
}

// renameKeys maps flag names onto record field names in place.
func renameKeys(patch map[string]any, names map[string]string) {
	for from, to := range names {
		if v, ok := patch[from]; ok {
			delete(patch, from)
			patch[to] = v
		}
	}
}
