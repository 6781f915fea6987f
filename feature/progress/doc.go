// Package progress renders sync pass progress in the terminal with pterm.
package progress
