// Package dispatch orchestrates a single CLI invocation: argument
// sanitising, entry resolution, plugin composition, the build gate and the
// hand-off to the build engine.
package dispatch
