package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/doughepi/grain/core/ingest"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func newTerminal(t *testing.T, verbose bool) (*Terminal, *bytes.Buffer) {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer
	return NewTerminal(&buf, verbose), &buf
}

func TestTerminal_SuccessfulPass(t *testing.T) {
	term, buf := newTerminal(t, false)

	term.OnPassStart(3)
	term.OnItem("a.md")
	term.OnBatchResult(ingest.OpUpdate, 0, true, 1, nil)
	term.OnBatchResult(ingest.OpCreate, 0, true, 2, nil)
	term.OnPassEnd(&ingest.PassResult{Source: "Directory", Staged: 3, Created: 2, Updated: 1})

	out := buf.String()
	assert.Contains(t, out, "3 items staged")
	assert.NotContains(t, out, "a.md", "items are only printed when verbose")
	assert.Contains(t, out, "update batch 0 [1/3]")
	assert.Contains(t, out, "create batch 0 [3/3]")
	assert.Contains(t, out, "Directory: 3 staged, 2 created, 1 updated")
}

func TestTerminal_Verbose(t *testing.T) {
	term, buf := newTerminal(t, true)

	term.OnPassStart(1)
	term.OnItem("a.md")
	assert.Contains(t, buf.String(), "a.md")
}

func TestTerminal_FailedBatch(t *testing.T) {
	term, buf := newTerminal(t, false)

	term.OnPassStart(1)
	term.OnBatchResult(ingest.OpCreate, 2, false, 1, errors.New("rate limited"))
	term.OnPassEnd(&ingest.PassResult{
		Source: "Notes",
		Staged: 1,
		Failed: 1,
		Batches: []ingest.BatchOutcome{
			{Op: ingest.OpCreate, Index: 2, DocumentIDs: []string{"x"}, Err: errors.New("rate limited")},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "create batch 2 failed (1 items): rate limited")
	assert.Contains(t, out, "Notes: 1 staged, 0 created, 0 updated (0 after waiting), 1 failed")
}
