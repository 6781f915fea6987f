// Package ingest is the incremental synchronization engine.
//
// A synchronization pass moves everything a Source currently has into the remote
// document store without uploading the same content twice:
//
//  1. Collect: candidates from the source are staged in a StagedStore. Candidates that
//     point at an existing file are staged by reference; others have their bytes
//     written to a payload.Store first.
//  2. Snapshot: the remote store's known document IDs are read once.
//  3. Reconcile: staged items are split into create and update targets by presence.
//  4. Dispatch: updates, then creates, are sent in batches of at most BatchSize with
//     at least Pace between calls. Updates of documents still processing are held
//     back and sent one at a time once the service is done with them.
//  5. Cleanup: payloads the pass wrote are removed when requested.
//
// Document IDs are derived from a source-specific unique characteristic with
// DeriveID, so re-running a pass is always safe.
//
// A failed batch never stops the pass; it is recorded in the PassResult. A failed
// snapshot aborts the pass because no safe partition exists without it.
//
// # Usage
//
//	engine, err := ingest.NewEngine(client, store, cfg.Sync, ingest.WithLogger(log))
//	result, err := engine.Sync(ctx, directory.New(root, opts), engine.DefaultPassOptions())
//	fmt.Println(result.Summary())
package ingest
