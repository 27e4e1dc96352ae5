package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/comment"
)

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage tenant comments",
	}

	cmd.AddCommand(
		newCommentAddCmd(),
		newCommentListCmd(),
		newCommentUpdateCmd(),
		newCommentRemoveCmd(),
	)

	return cmd
}

func newCommentAddCmd() *cobra.Command {
	var c comment.Comment

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Comments.Add(cmd.Context(), &c)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Added comment %s\n", saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.TenantID, "tenant", "", "tenant id")
	cmd.Flags().StringVar(&c.PropertyID, "property", "", "property id")
	cmd.Flags().StringVar(&c.Text, "text", "", "comment text")

	return cmd
}

func newCommentListCmd() *cobra.Command {
	var propertyID, tenantID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			comments := a.store.Comments.Items()
			filtered := comments[:0:0]
			for _, c := range comments {
				if propertyID != "" && c.PropertyID != propertyID {
					continue
				}
				if tenantID != "" && c.TenantID != tenantID {
					continue
				}
				filtered = append(filtered, c)
			}

			if isJSON() {
				return printJSON(filtered)
			}
			return printCommentTable(filtered, a.snapshot())
		},
	}

	cmd.Flags().StringVar(&propertyID, "property", "", "filter by property id")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "filter by tenant id")

	return cmd
}

func newCommentUpdateCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a comment's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("text") {
				return fmt.Errorf("nothing to update: set --text")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			saved, err := a.store.Comments.Update(cmd.Context(), args[0], map[string]any{"text": text})
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(saved)
			}
			fmt.Printf("✓ Updated comment %s\n", saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "comment text")

	return cmd
}

func newCommentRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			if err := a.store.Comments.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Removed comment %s\n", args[0])
			return nil
		},
	}
}
