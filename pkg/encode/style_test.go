package encode

import (
	"os"
	"path/filepath"
	"testing"

	cferrors "github.com/conceptflow/conceptflow/pkg/errors"
	"github.com/conceptflow/conceptflow/pkg/graph"
)

func writeStyleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "styles.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultStyleTableCoversAllEdgeTypes(t *testing.T) {
	table := DefaultStyleTable()
	for _, typ := range graph.EdgeTypes {
		if _, ok := table[typ]; !ok {
			t.Errorf("default style table missing edge type %s", typ)
		}
	}
}

func TestLoadStyleTableOverrides(t *testing.T) {
	path := writeStyleFile(t, `
[edge.REQUIRES]
color = "#000000"
opacity = 0.42

[edge.CUSTOM]
opacity = 0.1
`)

	table, err := LoadStyleTable(path)
	if err != nil {
		t.Fatalf("LoadStyleTable() error = %v", err)
	}

	// Overridden entry replaces the default.
	if got := table[graph.EdgeRequires]; got.Color != "#000000" || got.Opacity != 0.42 {
		t.Errorf("REQUIRES = %+v, want overridden color and opacity", got)
	}

	// Types absent from the file keep their defaults.
	if got := table[graph.EdgeExplains]; got.Color != "#2980b9" {
		t.Errorf("EXPLAINS = %+v, want default kept", got)
	}

	// New types get the fallback color when none is given.
	if got := table["CUSTOM"]; got.Color != DefaultEdgeColor || got.Opacity != 0.1 {
		t.Errorf("CUSTOM = %+v, want fallback color with file opacity", got)
	}
}

func TestLoadStyleTableErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode cferrors.Code
	}{
		{
			name: "opacity above range",
			content: `
[edge.REQUIRES]
opacity = 1.5
`,
			wantCode: cferrors.ErrCodeInvalidStyle,
		},
		{
			name: "opacity below range",
			content: `
[edge.REQUIRES]
opacity = -0.1
`,
			wantCode: cferrors.ErrCodeInvalidStyle,
		},
		{
			name:     "malformed toml",
			content:  `[edge.REQUIRES`,
			wantCode: cferrors.ErrCodeInvalidStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeStyleFile(t, tt.content)
			_, err := LoadStyleTable(path)
			if err == nil {
				t.Fatal("LoadStyleTable() should fail")
			}
			if !cferrors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v", cferrors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestLoadStyleTableMissingFile(t *testing.T) {
	_, err := LoadStyleTable(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("LoadStyleTable() should fail for missing file")
	}
}
