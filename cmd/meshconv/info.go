package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/triforge/meshview/pkg/formats"
	"github.com/triforge/meshview/pkg/geom"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about a mesh file",
	Long:  "Show triangle and vertex counts, bounding box, dimensions and the auto-scale factor the viewer would apply.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	g, err := formats.LoadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Mesh Information")
	fmt.Println("================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Statistics:")
	fmt.Printf("  Vertices: %d\n", len(g.Positions))
	fmt.Printf("  Triangles: %d\n\n", g.TriangleCount())

	bounds, ok := g.Bounds()
	if !ok {
		fmt.Println("Bounding Box: empty")
		return
	}

	size := bounds.Size()
	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: (%.6f, %.6f, %.6f)\n", bounds.Min.X(), bounds.Min.Y(), bounds.Min.Z())
	fmt.Printf("  Max: (%.6f, %.6f, %.6f)\n", bounds.Max.X(), bounds.Max.Y(), bounds.Max.Z())
	fmt.Printf("  Center: (%.6f, %.6f, %.6f)\n\n", bounds.Center().X(), bounds.Center().Y(), bounds.Center().Z())

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", size.X())
	fmt.Printf("  Height (Y): %.6f units\n", size.Y())
	fmt.Printf("  Depth (Z): %.6f units\n", size.Z())
	fmt.Printf("  Max extent: %.6f units\n", bounds.MaxExtent())
	fmt.Printf("  Auto-scale (fit to 2 units): %.6f\n", geom.AutoScale(g, 2))
}
