// Package utils provides loose value conversions for rows scanned into maps.
// SQLite hands back integers, floats, strings or byte slices for the same column
// depending on how a row was written; these helpers normalize them.
package utils
