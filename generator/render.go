package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var diffOnly bool

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders all compounds into the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		s, err := loadSite(cfg, log)
		if err != nil {
			return err
		}

		if diffOnly {
			diff, err := s.Diff(cfg.Output)
			if err != nil {
				return fmt.Errorf("diffing output: %v", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		}
		return s.Write(cfg.Output, log)
	},
}

func init() {
	renderCmd.Flags().BoolVar(&diffOnly, "diff", false, "print what would change in the output directory instead of writing it")
}
