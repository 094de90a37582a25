package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/triforge/meshview/pkg/formats"
	"github.com/triforge/meshview/pkg/geom"
)

var (
	convertBinary    bool
	convertTranslate []float32
	convertRotate    []float32
	convertScale     []float32
)

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert a mesh file to STL",
	Long: `Convert STL, OBJ or glTF/GLB input to STL output. An optional
translate/rotate/scale transform is baked into the vertex data, the same
way the viewer's export does; normals are recomputed after baking.`,
	Args: cobra.ExactArgs(2),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertBinary, "binary", false, "write binary STL instead of ASCII")
	convertCmd.Flags().Float32SliceVar(&convertTranslate, "translate", nil, "translation x,y,z")
	convertCmd.Flags().Float32SliceVar(&convertRotate, "rotate", nil, "rotation in degrees around x,y,z, applied in XYZ order")
	convertCmd.Flags().Float32SliceVar(&convertScale, "scale", nil, "scale x,y,z (or a single uniform factor)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) {
	input, output := args[0], args[1]

	g, err := formats.LoadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	transform, err := buildTransform()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if transform != geom.IdentityTransform() {
		g.ApplyMatrix(transform.Matrix())
		g.RecomputeNormals()
	}

	format := formats.STLASCII
	if convertBinary {
		format = formats.STLBinary
	}

	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := formats.WriteSTL(f, g, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing STL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s STL: %s (%d triangles)\n", format, output, g.TriangleCount())
}

// buildTransform assembles the TRS from the convert flags.
func buildTransform() (geom.Transform, error) {
	t := geom.IdentityTransform()

	if convertTranslate != nil {
		if len(convertTranslate) != 3 {
			return t, fmt.Errorf("--translate needs 3 values, got %d", len(convertTranslate))
		}
		t.Position = mgl32.Vec3{convertTranslate[0], convertTranslate[1], convertTranslate[2]}
	}

	if convertRotate != nil {
		if len(convertRotate) != 3 {
			return t, fmt.Errorf("--rotate needs 3 values, got %d", len(convertRotate))
		}
		rx := mgl32.QuatRotate(mgl32.DegToRad(convertRotate[0]), mgl32.Vec3{1, 0, 0})
		ry := mgl32.QuatRotate(mgl32.DegToRad(convertRotate[1]), mgl32.Vec3{0, 1, 0})
		rz := mgl32.QuatRotate(mgl32.DegToRad(convertRotate[2]), mgl32.Vec3{0, 0, 1})
		t.Rotation = rz.Mul(ry).Mul(rx)
	}

	if convertScale != nil {
		switch len(convertScale) {
		case 1:
			s := convertScale[0]
			t.Scale = mgl32.Vec3{s, s, s}
		case 3:
			t.Scale = mgl32.Vec3{convertScale[0], convertScale[1], convertScale[2]}
		default:
			return t, fmt.Errorf("--scale needs 1 or 3 values, got %d", len(convertScale))
		}
	}

	return t, nil
}
