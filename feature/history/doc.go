// Package history records a summary of every sync pass in the database.
//
// History is for reporting only. Which documents exist is always decided from the
// remote service, never from these records.
package history
