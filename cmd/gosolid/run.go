package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/gosolid/internal/script"
	"github.com/philipparndt/gosolid/pkg/analysis"
	"github.com/philipparndt/gosolid/pkg/kernel"
	"github.com/philipparndt/gosolid/pkg/watcher"
)

var watch bool

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a modeling script and list the resulting objects",
	Long: `Execute every step of a YAML modeling script against an empty document.
With --watch the script is re-run whenever the file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-run the script when it changes")
}

func runScript(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	if err := runOnce(cmd.Context(), out, filename); err != nil {
		if !watch {
			return err
		}
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	if !watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(cfg.GetDebounce())
	if err != nil {
		return err
	}
	defer fw.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := fw.Watch([]string{filename}, func(string) {
		if err := runOnce(ctx, out, filename); err != nil {
			zap.L().Error("script failed", zap.String("script", filename), zap.Error(err))
		}
	}); err != nil {
		return err
	}
	fw.Start()

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", filename)
	<-ctx.Done()
	return nil
}

func runOnce(ctx context.Context, out io.Writer, filename string) error {
	s, err := script.Load(filename)
	if err != nil {
		return err
	}
	res, err := script.NewRunner(cfg, kernel.NewLocal()).Run(ctx, s)
	if err != nil {
		return err
	}

	title := s.Name
	if title == "" {
		title = filename
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "====================")
	for _, item := range res.Editor.DB.VisibleObjects() {
		result := analysis.Analyze(item.Shape())
		fmt.Fprintf(out, "%-12s %-6s min %s max %s\n",
			res.NameOf(item),
			result.Kind,
			analysis.FormatVector(result.BoundingBox.Min),
			analysis.FormatVector(result.BoundingBox.Max))
	}
	return nil
}
