package cmd

import (
	"testing"
	"time"

	"github.com/doughepi/grain/feature/history"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryTable(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data := historyTable([]history.PassRecord{
		{PassID: "p1", Source: "Notes", Staged: 4, Created: 3, Failed: 1, StartedAt: started, FinishedAt: started.Add(1500 * time.Millisecond)},
	})

	require.Len(t, data, 2)
	assert.Equal(t, "Source", data[0][1])
	row := data[1]
	assert.Equal(t, "Notes", row[1])
	assert.Equal(t, "4", row[2])
	assert.Contains(t, row[6], "1")
	assert.Equal(t, "1.5s", row[7])
	assert.Equal(t, "p1", row[8])
}
