// Package notes is the sync source for the macOS Notes application, read through
// osascript. Password protected notes are never exported.
package notes
