package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/checklist"
)

func newChecklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage checklists",
	}

	cmd.AddCommand(
		newChecklistAddCmd(),
		newChecklistListCmd(),
		newChecklistShowCmd(),
		newChecklistUpdateCmd(),
		newChecklistToggleCmd(),
		newChecklistDuplicateCmd(),
		newChecklistRemoveCmd(),
	)

	return cmd
}

func newChecklistAddCmd() *cobra.Command {
	var c checklist.Checklist
	var tasks []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, text := range tasks {
				c.Tasks = append(c.Tasks, checklist.NewTask(text))
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Checklists.Add(cmd.Context(), &c)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Added checklist %s (%s, %d tasks)\n", saved.Name, saved.ID, len(saved.Tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&c.Name, "name", "", "checklist name")
	cmd.Flags().StringVar(&c.PropertyID, "property", "", "property id")
	cmd.Flags().BoolVar(&c.IsTemplate, "template", false, "mark as a reusable template")
	cmd.Flags().StringArrayVar(&tasks, "task", nil, "task text (repeatable)")

	return cmd
}

func newChecklistListCmd() *cobra.Command {
	var propertyID string
	var templates bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checklists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			checklists := a.store.Checklists.Items()
			filtered := checklists[:0:0]
			for _, c := range checklists {
				if propertyID != "" && c.PropertyID != propertyID {
					continue
				}
				if templates && !c.IsTemplate {
					continue
				}
				filtered = append(filtered, c)
			}

			if isJSON() {
				return printJSON(filtered)
			}
			return printChecklistTable(filtered, a.snapshot())
		},
	}

	cmd.Flags().StringVar(&propertyID, "property", "", "filter by property id")
	cmd.Flags().BoolVar(&templates, "templates", false, "only show templates")

	return cmd
}

func newChecklistShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a checklist with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			c, ok := a.store.Checklists.Get(args[0])
			if !ok {
				return fmt.Errorf("checklist %s not found", args[0])
			}

			if isJSON() {
				return printJSON(c)
			}
			printChecklistDetail(c, a.snapshot())
			return nil
		},
	}
}

func newChecklistUpdateCmd() *cobra.Command {
	var c checklist.Checklist

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a checklist",
		Long:  "Update a checklist's name, property, or template flag. Tasks are edited with the toggle subcommand.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			setIfChanged(cmd, patch, "name", c.Name)
			setIfChanged(cmd, patch, "property", c.PropertyID)
			setIfChanged(cmd, patch, "template", c.IsTemplate)
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: set at least one field flag")
			}
			renameKeys(patch, map[string]string{
				"property": "propertyId",
				"template": "isTemplate",
			})

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Checklists.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Updated checklist %s\n", saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.Name, "name", "", "checklist name")
	cmd.Flags().StringVar(&c.PropertyID, "property", "", "property id")
	cmd.Flags().BoolVar(&c.IsTemplate, "template", false, "mark as a reusable template")

	return cmd
}

func newChecklistToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <checklist-id> <task-id>",
		Short: "Toggle a task's completion state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.ToggleTask(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			done, total := saved.Progress()
			fmt.Printf("✓ Toggled task. %s: %d/%d done\n", saved.Name, done, total)
			return nil
		},
	}
}

func newChecklistDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Duplicate a checklist with all tasks reset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			dup, err := a.store.DuplicateChecklist(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(dup)
			}
			fmt.Printf("✓ Duplicated as %s (%s)\n", dup.Name, dup.ID)
			return nil
		},
	}
}

func newChecklistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			if err := a.store.Checklists.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Removed checklist %s\n", args[0])
			return nil
		},
	}
}
