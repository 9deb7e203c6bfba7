package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/importgraph/pkg/config"
)

// configCommand creates the config command, which prints the effective
// configuration.
func (c *CLI) configCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration analyze would use: defaults, overlaid with the
given config file and the ` + config.EnvDSN + ` environment variable.
Passwords in the DSN are masked. The output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if path != "" {
				loaded, err := config.Load(path)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			cfg.ApplyEnv()
			return cfg.Redacted().WriteTOML(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file (.toml, .yaml)")
	return cmd
}
