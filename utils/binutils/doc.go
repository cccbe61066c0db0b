// Package binutils implements helpers shared by the tableproof
// executables, most notably the structured logger.
package binutils
