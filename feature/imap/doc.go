// Package imap is the sync source for an IMAP mailbox.
//
// The mailbox is selected read-only and messages are fetched with BODY.PEEK[] so
// syncing never marks mail as seen. Each message is keyed by its UID and synced with
// its HTML body, falling back to the plain text body.
package imap
