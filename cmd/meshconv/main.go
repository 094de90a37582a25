// Package main is the meshconv CLI: headless mesh inspection and STL
// conversion using the same pipeline as the viewer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meshconv",
	Short: "Inspect and convert 3D mesh files",
	Long: `meshconv is a command-line companion to meshview. It reads STL, OBJ
and glTF/GLB files, prints mesh statistics, and converts any supported
format to STL (ASCII or binary) with an optional baked transform.`,
	Version: "1.0.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
