package jsonarr

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sonnes/tensorview/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "0.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantCount int
		checks    func(t *testing.T, a *core.Artifact)
	}{
		{
			name:      "single int matrix",
			content:   `[[[1,10],[2,20],[3,30]]]`,
			wantCount: 1,
			checks: func(t *testing.T, a *core.Artifact) {
				e := a.Elements[0]
				assert.Equal(t, core.Int64, e.DType)
				assert.Equal(t, []int{3, 2}, e.Shape)
				assert.Equal(t, []float64{1, 10, 2, 20, 3, 30}, e.Data)
			},
		},
		{
			name:      "floats promote dtype",
			content:   `[[[1,0.5]]]`,
			wantCount: 1,
			checks: func(t *testing.T, a *core.Artifact) {
				assert.Equal(t, core.Float64, a.Elements[0].DType)
			},
		},
		{
			name:      "non-tensor elements kept as nil",
			content:   `[{"a":1}, "label", [["x"]], 4]`,
			wantCount: 4,
			checks: func(t *testing.T, a *core.Artifact) {
				assert.Nil(t, a.Elements[0])
				assert.Nil(t, a.Elements[1])
				assert.Nil(t, a.Elements[2])
				require.NotNil(t, a.Elements[3])
				assert.Empty(t, a.Elements[3].Shape)
				assert.Equal(t, []float64{4}, a.Elements[3].Data)
			},
		},
		{
			name:      "zero columns",
			content:   `[[[],[]]]`,
			wantCount: 1,
			checks: func(t *testing.T, a *core.Artifact) {
				assert.Equal(t, []int{2, 0}, a.Elements[0].Shape)
			},
		},
		{
			name:      "empty container",
			content:   `[]`,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := (&Reader{}).ReadFile(writeFile(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, Format, a.Format)
			require.Len(t, a.Elements, tt.wantCount)
			if tt.checks != nil {
				tt.checks(t, a)
			}
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{name: "ragged", content: `[[[1,2],[3]]]`, target: core.ErrShape},
		{name: "not an array", content: `{"data":[]}`},
		{name: "truncated", content: `[[[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Reader{}).ReadFile(writeFile(t, tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := (&Reader{}).ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
