// Package gate decides whether a build can be skipped because the output
// directory still matches the fingerprint recorded by the previous build.
//
// The gate only engages for the build command when the srchash flag was
// given explicitly:
//
//	--srchash=false  fingerprint and record, never skip
//	--srchash        fingerprint, record, and skip when unchanged
//
// A stored fingerprint only counts while the output directory also holds
// the index artifact. Anything else is treated as a first build.
package gate
