package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/doughepi/grain/core/ingest"

	"go.uber.org/zap"
)

// SourceName is the source tag stamped on note items.
const SourceName = "Notes"

// listScript enumerates every note as a JSON array.
const listScript = `
const app = Application("Notes");
const out = [];
app.accounts().forEach(account => {
	account.folders().forEach(folder => {
		folder.notes().forEach(note => {
			const locked = note.passwordProtected();
			out.push({
				id: note.id(),
				name: note.name(),
				account: account.name(),
				folder: folder.name(),
				password_protected: locked,
				body: locked ? "" : note.body(),
			});
		});
	});
});
JSON.stringify(out);
`

// Note is one note as reported by the Notes application.
type Note struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Account           string `json:"account"`
	Folder            string `json:"folder"`
	PasswordProtected bool   `json:"password_protected"`
	Body              string `json:"body"`
}

// Runner executes a JavaScript for Automation script and returns its stdout.
type Runner interface {
	Run(ctx context.Context, script string) ([]byte, error)
}

// OsascriptRunner runs scripts through osascript.
type OsascriptRunner struct{}

// Run implements Runner.
func (OsascriptRunner) Run(ctx context.Context, script string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-l", "JavaScript", "-e", script)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("osascript failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Source syncs every note that is not password protected.
type Source struct {
	runner Runner
	logger *zap.Logger
}

// New creates a notes source. A nil runner uses osascript.
func New(runner Runner, logger *zap.Logger) *Source {
	if runner == nil {
		runner = OsascriptRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{runner: runner, logger: logger}
}

// Name implements ingest.Source.
func (s *Source) Name() string {
	return SourceName
}

// Notes lists every note.
func (s *Source) Notes(ctx context.Context) ([]Note, error) {
	out, err := s.runner.Run(ctx, listScript)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	var notes []Note
	if err := json.Unmarshal(bytes.TrimSpace(out), &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

// Fetch implements ingest.Source.
func (s *Source) Fetch(ctx context.Context) ([]ingest.Candidate, error) {
	notes, err := s.Notes(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]ingest.Candidate, 0, len(notes))
	for _, n := range notes {
		if n.PasswordProtected {
			s.logger.Debug("Skipping locked note", zap.String("id", n.ID))
			continue
		}
		candidates = append(candidates, ingest.Candidate{
			Key:       n.ID,
			Data:      []byte(n.Body),
			Extension: "html",
			Label:     n.Name,
			Metadata: ingest.Metadata{
				{Key: "account", Value: n.Account},
				{Key: "folder", Value: n.Folder},
				{Key: "name", Value: n.Name},
				{Key: "id", Value: n.ID},
			},
		})
	}
	return candidates, nil
}
