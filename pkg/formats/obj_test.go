package formats

import "testing"

const objQuad = `# simple quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

const objTriangle = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestParseOBJ(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantTris  int
		wantVerts int
	}{
		{"triangle", objTriangle, 1, 3},
		{"quad fan-triangulated", objQuad, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseOBJ([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseOBJ: %v", err)
			}
			if g.TriangleCount() != tt.wantTris {
				t.Errorf("triangle count = %d, want %d", g.TriangleCount(), tt.wantTris)
			}
			if len(g.Positions) != tt.wantVerts {
				t.Errorf("vertex count = %d, want %d", len(g.Positions), tt.wantVerts)
			}
			if len(g.Normals) != len(g.Positions) {
				t.Errorf("expected recomputed normals for every vertex")
			}
		})
	}
}

func TestParseOBJ_NoFaces(t *testing.T) {
	if _, err := ParseOBJ([]byte("v 0 0 0\nv 1 0 0\n")); err == nil {
		t.Error("expected error for OBJ without faces")
	}
}
