package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/internal/config"
	"github.com/philipparndt/gosolid/internal/logging"
	"github.com/philipparndt/gosolid/version"
)

var (
	configPath string
	verbose    bool

	cfg         *config.Config
	flushLogger func()
)

var rootCmd = &cobra.Command{
	Use:   "gosolid",
	Short: "Scripted solid modeling sessions",
	Long: `gosolid runs scripted modeling sessions: geometry commands with previews,
object picking in viewports, mirror and symmetry operations.
It reports the resulting document with dimensions and edge statistics.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		flushLogger, err = logging.Install(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if flushLogger != nil {
			flushLogger()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "gosolid.yaml", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
