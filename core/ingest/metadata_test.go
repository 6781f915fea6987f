package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_WithKeepsPosition(t *testing.T) {
	md := NewMetadata("imap").With("subject", "hi").With("from", "a@b.c")
	updated := md.With("subject", "re: hi")

	assert.Equal(t, []string{"source", "subject", "from"}, updated.Keys())
	v, ok := updated.Get("subject")
	require.True(t, ok)
	assert.Equal(t, "re: hi", v)

	// The receiver is untouched.
	v, _ = md.Get("subject")
	assert.Equal(t, "hi", v)
}

func TestMetadata_MarshalJSONPreservesOrder(t *testing.T) {
	md := NewMetadata("directory").
		With("path", "/tmp/z.md").
		With("name", "z.md").
		With("hash", "abc")

	data, err := json.Marshal(md)
	require.NoError(t, err)
	assert.Equal(t, `{"source":"directory","path":"/tmp/z.md","name":"z.md","hash":"abc"}`, string(data))

	empty, err := json.Marshal(Metadata{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestMetadata_MergeOverridesInPlace(t *testing.T) {
	base := NewMetadata("notes")
	merged := base.Merge(Metadata{{Key: "name", Value: "todo"}, {Key: "source", Value: "icloud"}})

	assert.Equal(t, []string{"source", "name"}, merged.Keys())
	assert.Equal(t, map[string]any{"source": "icloud", "name": "todo"}, merged.Map())
}

func TestMetadata_GetMissing(t *testing.T) {
	_, ok := NewMetadata("x").Get("nope")
	assert.False(t, ok)
}
