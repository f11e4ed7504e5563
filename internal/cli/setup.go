package cli

import (
	"github.com/berkayda/hawkeye-public/internal/setup"
	"github.com/spf13/cobra"
)

const defaultSetupPath = "hawkeye.yaml"

func newSetupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create a config file with an interactive wizard",
		Long:  "Create a config file with an interactive wizard. The file is written to --config, or hawkeye.yaml when unset.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.ConfigPath
			if path == "" {
				path = defaultSetupPath
			}
			_, err := setup.RunTUI(path)
			return err
		},
	}
}
