package formats

import (
	"errors"
	"testing"
)

func TestLoad_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{"stl by extension", "model.stl", []byte(asciiTriangle), nil},
		{"uppercase extension", "MODEL.STL", []byte(asciiTriangle), nil},
		{"obj by extension", "model.obj", []byte(objTriangle), nil},
		{"unsupported extension", "model.ply", []byte("ply"), ErrUnsupportedExtension},
		{"no extension", "model", []byte{}, ErrUnsupportedExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Load(tt.filename, tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if g.TriangleCount() == 0 {
				t.Error("loaded geometry has no triangles")
			}
		})
	}
}

func TestLoad_MalformedLeavesError(t *testing.T) {
	// Recognized extension with garbage content must surface an error, not
	// panic.
	if _, err := Load("broken.glb", []byte{0x00, 0x01, 0x02}); err == nil {
		t.Error("expected error for malformed glb")
	}
	if _, err := Load("broken.stl", []byte{0x00}); err == nil {
		t.Error("expected error for malformed stl")
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.stl", true},
		{"b.OBJ", true},
		{"c.gltf", true},
		{"d.glb", true},
		{"e.ply", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.name); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
