package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/doughepi/grain/core/remote"
)

// journal records the order in which fakes were called.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...any) {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
	j.mu.Unlock()
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

type remoteCall struct {
	op    Operation
	files []remote.File
	at    time.Time
}

// fakeRemote records bulk calls. fail maps a zero-based call number to the error that
// call returns.
type fakeRemote struct {
	mu      sync.Mutex
	calls   []remoteCall
	fail    map[int]error
	journal *journal
	onCall  func(n int)
}

func (f *fakeRemote) record(op Operation, files []remote.File) error {
	f.mu.Lock()
	n := len(f.calls)
	f.calls = append(f.calls, remoteCall{op: op, files: files, at: time.Now()})
	err := f.fail[n]
	hook := f.onCall
	f.mu.Unlock()

	f.journal.add("%s %d", op, len(files))
	if hook != nil {
		hook(n)
	}
	return err
}

func (f *fakeRemote) IngestFiles(ctx context.Context, files []remote.File) (*remote.Response, error) {
	if err := f.record(OpCreate, files); err != nil {
		return nil, err
	}
	return &remote.Response{}, nil
}

func (f *fakeRemote) UpdateFiles(ctx context.Context, files []remote.File) (*remote.Response, error) {
	if err := f.record(OpUpdate, files); err != nil {
		return nil, err
	}
	return &remote.Response{}, nil
}

func (f *fakeRemote) DocumentsOverview(ctx context.Context, ids []string, offset, limit int) (*remote.OverviewPage, error) {
	return &remote.OverviewPage{}, nil
}

func (f *fakeRemote) Login(ctx context.Context, email, password string) (*remote.Token, error) {
	return &remote.Token{AccessToken: "test"}, nil
}

func (f *fakeRemote) recorded() []remoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remoteCall(nil), f.calls...)
}

// fakeSnapshotter serves a fixed full listing. Targeted lookups walk through
// sequences, one entry per poll, repeating the last entry once exhausted.
type fakeSnapshotter struct {
	mu          sync.Mutex
	full        map[string]Status
	fullErr     error
	sequences   map[string][]Status
	targetedErr error
	polls       map[string]int
	fullCalls   int
	journal     *journal
}

func (f *fakeSnapshotter) Snapshot(ctx context.Context, ids []string) (map[string]Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ids == nil {
		f.fullCalls++
		f.journal.add("snapshot")
		if f.fullErr != nil {
			return nil, f.fullErr
		}
		out := make(map[string]Status, len(f.full))
		for k, v := range f.full {
			out[k] = v
		}
		return out, nil
	}

	if f.polls == nil {
		f.polls = make(map[string]int)
	}
	out := make(map[string]Status)
	for _, id := range ids {
		n := f.polls[id]
		f.polls[id] = n + 1
		f.journal.add("poll %d", n+1)

		seq := f.sequences[id]
		if len(seq) == 0 {
			if s, ok := f.full[id]; ok {
				out[id] = s
			}
			continue
		}
		s := seq[min(n, len(seq)-1)]
		if s != StatusAbsent {
			out[id] = s
		}
	}
	if f.targetedErr != nil {
		return nil, f.targetedErr
	}
	return out, nil
}

func (f *fakeSnapshotter) pollCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls[id]
}

// recordingObserver keeps every notification.
type recordingObserver struct {
	NopObserver
	mu      sync.Mutex
	starts  []int
	results []bool
	items   []string
	passEnd *PassResult
}

func (o *recordingObserver) OnBatchStart(op Operation, index, size int) {
	o.mu.Lock()
	o.starts = append(o.starts, size)
	o.mu.Unlock()
}

func (o *recordingObserver) OnBatchResult(op Operation, index int, success bool, count int, err error) {
	o.mu.Lock()
	o.results = append(o.results, success)
	o.mu.Unlock()
}

func (o *recordingObserver) OnItem(label string) {
	o.mu.Lock()
	o.items = append(o.items, label)
	o.mu.Unlock()
}

func (o *recordingObserver) OnPassEnd(result *PassResult) {
	o.mu.Lock()
	o.passEnd = result
	o.mu.Unlock()
}

// fakeSource returns fixed candidates.
type fakeSource struct {
	name       string
	candidates []Candidate
	err        error
}

func (s fakeSource) Name() string { return s.name }

func (s fakeSource) Fetch(ctx context.Context) ([]Candidate, error) {
	return s.candidates, s.err
}

func stagedItems(source string, keys ...string) []DataItem {
	items := make([]DataItem, len(keys))
	for i, k := range keys {
		items[i] = NewDataItem(k, "/payloads/"+k, NewMetadata(source).With("key", k), k, false)
	}
	return items
}
