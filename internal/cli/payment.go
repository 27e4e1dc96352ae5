package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/payment"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Manage rent payments",
	}

	cmd.AddCommand(
		newPaymentAddCmd(),
		newPaymentListCmd(),
		newPaymentUpdateCmd(),
		newPaymentMarkCmd(),
		newPaymentRemoveCmd(),
	)

	return cmd
}

func paymentFlags(cmd *cobra.Command, p *payment.Payment) {
	cmd.Flags().StringVar(&p.PropertyID, "property", "", "property id")
	cmd.Flags().StringVar(&p.TenantID, "tenant", "", "tenant id")
	cmd.Flags().Float64Var(&p.Amount, "amount", 0, "payment amount")
	cmd.Flags().StringVar((*string)(&p.Currency), "currency", "USD", "currency (USD|EUR|EGP)")
	cmd.Flags().StringVar(&p.DueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar((*string)(&p.Status), "status", "pending", "status (pending|paid|overdue)")
	cmd.Flags().StringVar(&p.Notes, "notes", "", "free-text notes")
}

func newPaymentAddCmd() *cobra.Command {
	var p payment.Payment

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Payments.Add(cmd.Context(), &p)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Added payment %s (%s, due %s)\n",
				saved.ID, formatAmount(saved.Amount, saved.Currency), saved.DueDate)
			return nil
		},
	}

	paymentFlags(cmd, &p)
	return cmd
}

func newPaymentListCmd() *cobra.Command {
	var propertyID, tenantID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !payment.ValidStatus(status) {
				return fmt.Errorf("invalid payment status: %s", status)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			payments := a.store.Payments.Items()
			filtered := payments[:0:0]
			for _, p := range payments {
				if propertyID != "" && p.PropertyID != propertyID {
					continue
				}
				if tenantID != "" && p.TenantID != tenantID {
					continue
				}
				if status != "" && string(p.Status) != status {
					continue
				}
				filtered = append(filtered, p)
			}

			if isJSON() {
				return printJSON(filtered)
			}
			return printPaymentTable(filtered, a.snapshot())
		},
	}

	cmd.Flags().StringVar(&propertyID, "property", "", "filter by property id")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "filter by tenant id")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending|paid|overdue)")

	return cmd
}

func newPaymentUpdateCmd() *cobra.Command {
	var p payment.Payment

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a payment",
		Long:  "Update a payment. Only the flags you set are changed; every other field is preserved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			setIfChanged(cmd, patch, "property", p.PropertyID)
			setIfChanged(cmd, patch, "tenant", p.TenantID)
			setIfChanged(cmd, patch, "amount", p.Amount)
			setIfChanged(cmd, patch, "currency", string(p.Currency))
			setIfChanged(cmd, patch, "due", p.DueDate)
			setIfChanged(cmd, patch, "status", string(p.Status))
			setIfChanged(cmd, patch, "notes", p.Notes)
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: set at least one field flag")
			}
			if v, ok := patch["status"].(string); ok && !payment.ValidStatus(v) {
				return fmt.Errorf("invalid payment status: %s", v)
			}
			renameKeys(patch, map[string]string{
				"property": "propertyId",
				"tenant":   "tenantId",
				"due":      "dueDate",
			})

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Payments.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Updated payment %s\n", saved.ID)
			return nil
		},
	}

	paymentFlags(cmd, &p)
	return cmd
}

// newPaymentMarkCmd is shorthand for flipping just the status field.
func newPaymentMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <id> <pending|paid|overdue>",
		Short: "Set a payment's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !payment.ValidStatus(args[1]) {
				return fmt.Errorf("invalid payment status: %s", args[1])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Payments.Update(cmd.Context(), args[0], map[string]any{"status": args[1]})
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Payment %s is now %s\n", saved.ID, saved.Status)
			return nil
		},
	}
}

func newPaymentRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			if err := a.store.Payments.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Removed payment %s\n", args[0])
			return nil
		},
	}
}
