// Package messages is the sync source for a local chat database.
//
// The database is opened read-only. Messages are grouped per handle and each
// conversation becomes one JSON document keyed by the handle, so a new message
// updates the existing document instead of creating another.
package messages
