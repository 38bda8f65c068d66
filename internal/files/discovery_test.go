package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"sales.xlsx", true},
		{"SALES.XLSX", true},
		{"macro.xlsm", true},
		{"export.csv", true},
		{"legacy.xls", false},
		{"notes.txt", false},
		{"~$sales.xlsx", false},
		{".hidden.csv", false},
		{filepath.Join("dir", "q1.csv"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.name))
		})
	}
}

func TestFindInputFiles(t *testing.T) {
	dir := t.TempDir()
	createFiles(t, dir, "b.csv", "a.xlsx", "~$a.xlsx", "readme.txt", "old.xls", filepath.Join("nested", "c.csv"))

	found, err := NewDiscovery("").FindInputFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range found {
		names = append(names, f.Name)
		assert.Equal(t, int64(1), f.Size)
	}
	assert.Equal(t, []string{"a.xlsx", "b.csv"}, names)
}

func TestFindInputFiles_RelativeToBase(t *testing.T) {
	base := t.TempDir()
	createFiles(t, base, filepath.Join("exports", "march.csv"))

	found, err := NewDiscovery(base).FindInputFiles("exports")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(base, "exports", "march.csv"), found[0].Path)
}

func TestFindInputFiles_MissingDir(t *testing.T) {
	_, err := NewDiscovery("").FindInputFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestFindFilesByPattern(t *testing.T) {
	dir := t.TempDir()
	createFiles(t, dir, "q1.csv", "q2.csv", "q1.txt", "summary.xlsx")

	found, err := NewDiscovery(dir).FindFilesByPattern("q*")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "q1.csv", found[0].Name)
	assert.Equal(t, "q2.csv", found[1].Name)

	_, err = NewDiscovery(dir).FindFilesByPattern("[")
	assert.Error(t, err)
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	createFiles(t, dir,
		filepath.Join("exports", "a.csv"),
		filepath.Join("exports", "b.xlsx"),
		"march.csv",
		"q1.csv",
		"q2.csv",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	d := NewDiscovery(dir)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "plain files keep order",
			args: []string{"q2.csv", "march.csv"},
			want: []string{filepath.Join(dir, "q2.csv"), filepath.Join(dir, "march.csv")},
		},
		{
			name: "directory expands sorted",
			args: []string{"exports"},
			want: []string{filepath.Join(dir, "exports", "a.csv"), filepath.Join(dir, "exports", "b.xlsx")},
		},
		{
			name: "glob pattern",
			args: []string{"q?.csv"},
			want: []string{filepath.Join(dir, "q1.csv"), filepath.Join(dir, "q2.csv")},
		},
		{
			name: "missing file is kept for validation",
			args: []string{"absent.csv"},
			want: []string{filepath.Join(dir, "absent.csv")},
		},
		{
			name:    "directory without inputs",
			args:    []string{"empty"},
			wantErr: true,
		},
		{
			name:    "pattern without matches",
			args:    []string{"*.xlsm"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.ExpandInputs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
