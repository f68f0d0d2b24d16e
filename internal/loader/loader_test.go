package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromReader(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{
			name: "valid puzzle",
			in: `[[5,3,0,0,7,0,0,0,0],
			     [6,0,0,1,9,5,0,0,0],
			     [0,9,8,0,0,0,0,6,0],
			     [8,0,0,0,6,0,0,0,3],
			     [4,0,0,8,0,3,0,0,1],
			     [7,0,0,0,2,0,0,0,6],
			     [0,6,0,0,0,0,2,8,0],
			     [0,0,0,4,1,9,0,0,5],
			     [0,0,0,0,8,0,0,7,9]]`,
		},
		{name: "not JSON", in: `five three zero`, wantErr: true},
		{name: "too few rows", in: `[[0,0,0,0,0,0,0,0,0]]`, wantErr: true},
		{
			name:    "short row",
			in:      `[[0],[0],[0],[0],[0],[0],[0],[0],[0]]`,
			wantErr: true,
		},
		{
			name: "value out of range",
			in: `[[10,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0]]`,
			wantErr: true,
		},
		{
			name: "fractional cell",
			in: `[[1.5,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0],
			     [0,0,0,0,0,0,0,0,0]]`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromReader(strings.NewReader(tt.in))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromReader failed: %v", err)
			}
			if g[0][0] != 5 || g[8][8] != 9 {
				t.Fatalf("grid corners = %d,%d, want 5,9", g[0][0], g[8][8])
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.json")
	data := `[[0,0,0,0,0,0,0,0,2],
	          [0,0,0,0,0,0,0,0,0],
	          [0,0,0,0,0,0,0,0,0],
	          [0,0,0,0,0,0,0,0,0],
	          [0,0,0,0,0,0,0,0,0],
	          [0,0,0,0,0,0,0,0,0],
	          [0,0,0,0,0,0,0,0,0],
	          [0,0,0,0,0,0,0,0,0],
	          [0,0,0,0,0,0,0,0,0]]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if g[0][8] != 2 {
		t.Fatalf("g[0][8] = %d, want 2", g[0][8])
	}
	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
