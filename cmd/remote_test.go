package cmd

import (
	"bytes"
	"testing"

	"github.com/doughepi/grain/core/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDocuments(t *testing.T) {
	page := &remote.OverviewPage{
		Results: []remote.Document{
			{ID: "doc-1", IngestionStatus: "success", Metadata: map[string]any{"source": "Notes"}},
		},
		TotalEntries: 1,
	}

	var jsonOut bytes.Buffer
	require.NoError(t, writeDocuments(&jsonOut, page, "json"))
	assert.Contains(t, jsonOut.String(), `"ingestion_status": "success"`)

	var yamlOut bytes.Buffer
	require.NoError(t, writeDocuments(&yamlOut, page, "yaml"))
	assert.Contains(t, yamlOut.String(), "ingestion_status: success")
	assert.Contains(t, yamlOut.String(), "total_entries: 1")
	assert.Contains(t, yamlOut.String(), "source: Notes")
}
