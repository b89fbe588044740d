package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aria-creative/vitrine/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// config show dumps the effective configuration as YAML. Secrets (passwords,
// hashes, the JWT secret) are excluded by their yaml tags.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (secrets redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
