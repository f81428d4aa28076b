// Package args models the argument set handed to the build engine.
//
// Arguments is a flag-name to value mapping (booleans and strings, plus the
// positional list under "_"). It is built once per invocation from the typed
// CLI flags and any engine pass-through flags, and is mutated only by the
// disallowed-option step and the entry/clean injection steps.
package args
