package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doughepi/grain/core/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"a.md":             "# a",
		"b.txt":            "b",
		"c.pdf":            "%PDF",
		"README":           "no extension",
		"nested/d.md":      "# d",
		"nested/deep/e.MD": "# e",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func rel(t *testing.T, root string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestSource_Files(t *testing.T) {
	root := writeTree(t)
	ctx := context.Background()

	flat, err := New(root, Options{}, nil).Files(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.txt"}, rel(t, root, flat))

	deep, err := New(root, Options{Recursive: true}, nil).Files(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.txt", "nested/d.md", "nested/deep/e.MD"}, rel(t, root, deep))

	pdf, err := New(root, Options{Extensions: []string{".pdf"}}, nil).Files(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c.pdf"}, rel(t, root, pdf))
}

func TestSource_FilesErrors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), Options{}, nil).Files(context.Background())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "f.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = New(file, Options{}, nil).Files(context.Background())
	assert.ErrorContains(t, err, "not a directory")
}

func TestSource_Fetch(t *testing.T) {
	root := writeTree(t)
	src := New(root, Options{}, nil)
	assert.Equal(t, SourceName, src.Name())

	candidates, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	a := candidates[0]
	// sha256("# a")
	hash, err := HashFile(filepath.Join(root, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, hash, a.Key)
	assert.Len(t, a.Key, 64)
	assert.Equal(t, filepath.Join(root, "a.md"), a.Path)
	assert.Empty(t, a.Data)
	assert.Equal(t, []string{"path", "name", "suffix", "hash", "stem"}, a.Metadata.Keys())

	suffix, _ := a.Metadata.Get("suffix")
	stem, _ := a.Metadata.Get("stem")
	assert.Equal(t, ".md", suffix)
	assert.Equal(t, "a", stem)
}

func TestHashFile_ContentBased(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "one.txt")
	two := filepath.Join(dir, "two.txt")
	require.NoError(t, os.WriteFile(one, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(two, []byte("same"), 0o644))

	h1, err := HashFile(one)
	require.NoError(t, err)
	h2, err := HashFile(two)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, "0967115f2813a3541eaef77de9d9d5773f1c0c04314b0bbfe4ff3b3b1c55b5d5", h1)

	assert.Equal(t, ingest.DeriveID(h1), ingest.DeriveID(h2))
}
