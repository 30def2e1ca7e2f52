package main

import (
	"os"

	"github.com/spf13/cobra"
	"znkr.io/doxymd/generator/config"
)

var (
	configFile string
	verbose    bool
	input      string
	output     string
	keepGoing  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "doxymd [command]",
		Short:        "Renders Doxygen XML output as Markdown pages for a documentation site",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", config.DefaultFile, "configuration file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	flags.StringVarP(&input, "input", "i", "", "directory with Doxygen's XML output, overrides the configuration")
	flags.StringVarP(&output, "output", "o", "", "output directory, overrides the configuration")
	flags.BoolVarP(&keepGoing, "keep-going", "k", false, "skip compounds that fail to render")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(packCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
