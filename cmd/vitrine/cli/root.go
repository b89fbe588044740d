package cli

import (
	"github.com/spf13/cobra"

	"github.com/aria-creative/vitrine/internal/config"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitrine",
		Short: "Back-office API for the Aria Creative website",
		Long: `Vitrine is the back-office service behind the Aria Creative marketing site:
admin authentication, visitor contact messages with a triage workflow, and
the portfolio project catalog with its public/admin visibility split.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./vitrine.yaml)")

	cobra.OnInitialize(func() { config.Init(cfgFile) })

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}
