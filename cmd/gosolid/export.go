package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/internal/script"
	"github.com/philipparndt/gosolid/pkg/kernel"
	"github.com/philipparndt/gosolid/pkg/stl"
)

var exportCmd = &cobra.Command{
	Use:   "export [script] [object] [output.stl]",
	Short: "Write a solid created by a script as binary STL",
	Args:  cobra.ExactArgs(3),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	filename, name, output := args[0], args[1], args[2]

	s, err := script.Load(filename)
	if err != nil {
		return err
	}
	res, err := script.NewRunner(cfg, kernel.NewLocal()).Run(cmd.Context(), s)
	if err != nil {
		return err
	}
	item, ok := res.Lookup(name)
	if !ok {
		return fmt.Errorf("script has no object named %q", name)
	}
	solid, ok := item.Shape().(*kernel.Solid)
	if !ok {
		return fmt.Errorf("%s is a %s, only solids can be exported", name, item.Shape().Kind())
	}
	if err := stl.WriteFile(output, solid.Mesh); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d triangles to %s\n", solid.Mesh.TriangleCount(), output)
	return nil
}
