package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newSignupCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd, email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted if omitted)")

	return cmd
}

func runSignup(cmd *cobra.Command, email string) error {
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

	confirm, err := a.session.SignUp(cmd.Context(), email, password, "")
	if err != nil {
		return err
	}

	if confirm {
		fmt.Println("Account created. Check your email to confirm it, then run: rentkit login")
		return nil
	}

	fmt.Printf("✓ Signed up and logged in as %s\n", email)
	return nil
}

// promptCredentials reads the email (if not given) and password from stdin.
func promptCredentials(email string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", fmt.Errorf("email is required")
	}

	fmt.Print("Password: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimSpace(line)
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}

	return email, password, nil
}
