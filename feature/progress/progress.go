package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/doughepi/grain/core/ingest"

	"github.com/pterm/pterm"
)

// Terminal prints pass progress for interactive use.
type Terminal struct {
	ingest.NopObserver

	w       io.Writer
	verbose bool
	total   int
	done    int
}

// NewTerminal creates a terminal observer writing to w, or stdout when w is nil.
// Verbose also prints every item as it is sent.
func NewTerminal(w io.Writer, verbose bool) *Terminal {
	if w == nil {
		w = os.Stdout
	}
	return &Terminal{w: w, verbose: verbose}
}

func (t *Terminal) OnPassStart(staged int) {
	t.total, t.done = staged, 0
	pterm.Fprintln(t.w, fmt.Sprintf("🔄 %s: %d items staged", pterm.LightCyan("sync"), staged))
}

func (t *Terminal) OnItem(label string) {
	if t.verbose {
		pterm.Fprintln(t.w, fmt.Sprintf("  %s %s", pterm.Gray("→"), label))
	}
}

func (t *Terminal) OnBatchResult(op ingest.Operation, index int, success bool, count int, err error) {
	t.done += count
	if !success {
		pterm.Error.WithWriter(t.w).Printfln("%s batch %d failed (%d items): %v", op, index, count, err)
		return
	}
	pterm.Fprintln(t.w, fmt.Sprintf("  %s %s batch %d [%d/%d]", pterm.Green("✓"), op, index, t.done, t.total))
}

func (t *Terminal) OnPassEnd(result *ingest.PassResult) {
	if result.Err() != nil {
		pterm.Warning.WithWriter(t.w).Println(result.Summary())
		return
	}
	pterm.Success.WithWriter(t.w).Println(result.Summary())
}
