package main

import (
	"github.com/spf13/cobra"
	"znkr.io/doxymd/generator/pack"
)

var packCmd = &cobra.Command{
	Use:   "pack <file.tar>",
	Short: "Packs the rendered pages and images into a .tar file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		s, err := loadSite(cfg, log)
		if err != nil {
			return err
		}
		if err := pack.Pack(args[0], s); err != nil {
			return err
		}
		log.Info("packed site", "file", args[0], "docs", len(s.AllDocs()))
		return nil
	},
}
