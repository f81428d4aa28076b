// Package workspace manages the scratch directory an engine invocation uses
// to receive its resolved configuration. Each run gets its own directory
// (e.g., spabuild-20251214-122336-*) which is removed completely after use.
package workspace
