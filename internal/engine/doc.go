// Package engine is the boundary to the underlying bundler.
//
// The dispatcher only needs three things from a build engine: per-command
// default modes, a configuration resolution step yielding the output and
// index paths, and a run entry point. Service captures that contract;
// ExecService implements it by applying the ordered plugin list to a Config
// and invoking an external engine executable.
package engine
