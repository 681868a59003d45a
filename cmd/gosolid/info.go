package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/internal/script"
	"github.com/philipparndt/gosolid/pkg/analysis"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

var infoCmd = &cobra.Command{
	Use:   "info [script]",
	Short: "Display information about the objects a script creates",
	Long:  "Run a script, then show dimensions, triangle count, surface area, and edge statistics for every object.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	s, err := script.Load(filename)
	if err != nil {
		return err
	}
	res, err := script.NewRunner(cfg, kernel.NewLocal()).Run(cmd.Context(), s)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Document Information")
	fmt.Fprintln(out, "====================")
	if s.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", s.Name)
	}
	fmt.Fprintf(out, "Script: %s\n", filename)
	fmt.Fprintf(out, "Objects: %d\n", len(res.Editor.DB.VisibleObjects()))

	for _, item := range res.Editor.DB.VisibleObjects() {
		result := analysis.Analyze(item.Shape())

		fmt.Fprintf(out, "\n%s (%s)\n", res.NameOf(item), result.Kind)
		fmt.Fprintln(out, "--------------------")
		if result.TriangleCount > 0 {
			fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
			fmt.Fprintf(out, "  Surface Area: %.6f square units\n", result.SurfaceArea)
		} else {
			fmt.Fprintf(out, "  Length: %s\n", analysis.FormatMeasurement(result.CurveLength, ""))
		}
		fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)

		fmt.Fprintln(out, "  Bounding Box:")
		fmt.Fprintf(out, "    Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Fprintf(out, "    Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Fprintf(out, "    Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Fprintln(out, "  Dimensions:")
		fmt.Fprintf(out, "    Width (X): %.6f units\n", result.Dimensions.X)
		fmt.Fprintf(out, "    Depth (Y): %.6f units\n", result.Dimensions.Y)
		fmt.Fprintf(out, "    Height (Z): %.6f units\n", result.Dimensions.Z)
		fmt.Fprintf(out, "    Diagonal: %.6f units\n", result.BoundingBox.Diagonal())

		fmt.Fprintln(out, "  Edge Lengths:")
		fmt.Fprintf(out, "    Minimum: %.6f units\n", result.MinEdgeLength)
		fmt.Fprintf(out, "    Maximum: %.6f units\n", result.MaxEdgeLength)
		fmt.Fprintf(out, "    Average: %.6f units\n", result.AvgEdgeLength)
	}
	return nil
}
