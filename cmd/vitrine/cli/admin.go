package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin credential helpers",
		Long:  "Helpers for managing the single configured administrator credential.",
	}

	cmd.AddCommand(newAdminHashPasswordCmd())

	return cmd
}

// admin hash-password produces the bcrypt hash to put in
// VITRINE_ADMIN_PASSWORD_HASH, so the plaintext never has to live in the
// environment of the running service.
func newAdminHashPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash an admin password for configuration",
		Example: `  vitrine admin hash-password                 # prompts, no echo
  vitrine admin hash-password --password s3cret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminHashPassword(cmd, password)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to hash (prompted if omitted)")

	return cmd
}

func runAdminHashPassword(cmd *cobra.Command, password string) error {
	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		password = string(pwBytes)

		fmt.Fprint(cmd.OutOrStdout(), "Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(hash))
	return nil
}
