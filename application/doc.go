// Package application provides the executable-facing glue around the
// integrity core: configuration loading and saving, key and
// trusted-root provisioning, and the boundary encodings of digests
// and proofs.
package application
