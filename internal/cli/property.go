package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/money"
	"github.com/rentkit/rentkit/internal/property"
)

func newPropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Manage rental properties",
	}

	cmd.AddCommand(
		newPropertyAddCmd(),
		newPropertyListCmd(),
		newPropertyShowCmd(),
		newPropertyUpdateCmd(),
		newPropertyRemoveCmd(),
	)

	return cmd
}

// propertyFlags binds the editable property fields to a command.
func propertyFlags(cmd *cobra.Command, p *property.Property) {
	cmd.Flags().StringVar(&p.Name, "name", "", "property name")
	cmd.Flags().StringVar(&p.Location, "location", "", "neighborhood")
	cmd.Flags().StringVar(&p.City, "city", "", "city")
	cmd.Flags().StringVar(&p.Address, "address", "", "street address")
	cmd.Flags().StringVar((*string)(&p.Type), "type", "apartment", "type (apartment|house|studio|condo|townhouse)")
	cmd.Flags().IntVar(&p.Bedrooms, "bedrooms", 0, "bedroom count")
	cmd.Flags().Float64Var(&p.Bathrooms, "bathrooms", 0, "bathroom count")
	cmd.Flags().Float64Var(&p.Rent, "rent", 0, "monthly rent")
	cmd.Flags().StringVar((*string)(&p.Currency), "currency", "USD", "currency (USD|EUR|EGP)")
	cmd.Flags().StringVar(&p.Description, "description", "", "free-text description")
}

func newPropertyAddCmd() *cobra.Command {
	var p property.Property

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Properties.Add(cmd.Context(), &p)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Added property %s (%s)\n", saved.Name, saved.ID)
			return nil
		},
	}

	propertyFlags(cmd, &p)
	return cmd
}

func newPropertyListCmd() *cobra.Command {
	var city string
	var ptype string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			props := a.store.Properties.Items()
			if city != "" || ptype != "" {
				filtered := props[:0:0]
				for _, p := range props {
					if city != "" && p.City != city {
						continue
					}
					if ptype != "" && string(p.Type) != ptype {
						continue
					}
					filtered = append(filtered, p)
				}
				props = filtered
			}

			if isJSON() {
				return printJSON(props)
			}
			return printPropertyTable(props)
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "filter by city")
	cmd.Flags().StringVar(&ptype, "type", "", "filter by property type")

	return cmd
}

func newPropertyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			p, ok := a.store.Properties.Get(args[0])
			if !ok {
				return fmt.Errorf("property %s not found", args[0])
			}

			if isJSON() {
				return printJSON(p)
			}
			printPropertyDetail(p)
			return nil
		},
	}
}

func newPropertyUpdateCmd() *cobra.Command {
	var p property.Property

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a property",
		Long:  "Update a property. Only the flags you set are changed; every other field is preserved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			setIfChanged(cmd, patch, "name", p.Name)
			setIfChanged(cmd, patch, "location", p.Location)
			setIfChanged(cmd, patch, "city", p.City)
			setIfChanged(cmd, patch, "address", p.Address)
			setIfChanged(cmd, patch, "type", string(p.Type))
			setIfChanged(cmd, patch, "bedrooms", p.Bedrooms)
			setIfChanged(cmd, patch, "bathrooms", p.Bathrooms)
			setIfChanged(cmd, patch, "rent", p.Rent)
			setIfChanged(cmd, patch, "currency", string(p.Currency))
			setIfChanged(cmd, patch, "description", p.Description)
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: set at least one field flag")
			}

			if v, ok := patch["type"].(string); ok && !property.ValidType(v) {
				return fmt.Errorf("invalid property type: %s", v)
			}
			if v, ok := patch["currency"].(string); ok && !money.Valid(v) {
				return fmt.Errorf("invalid currency: %s", v)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Properties.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Updated property %s\n", saved.ID)
			return nil
		},
	}

	propertyFlags(cmd, &p)
	return cmd
}

func newPropertyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			if err := a.store.Properties.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Removed property %s\n", args[0])
			return nil
		},
	}
}

// setIfChanged records a flag's value in the patch only when the user set it.
func setIfChanged(cmd *cobra.Command, patch map[string]any, flag string, value any) {
	if cmd.Flags().Changed(flag) {
		patch[flag] = value
	}
}
