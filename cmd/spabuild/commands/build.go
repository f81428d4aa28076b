package commands

import (
	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/gate"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Entry string `arg:"" optional:"" help:"Entry file (defaults to the first of src/main.js, src/index.js, ...)"`

	Mode   string `help:"Build mode (default: production)"`
	Target string `help:"Build target: app, lib, wc or wc-async"`
	Name   string `help:"Library name for lib and wc targets"`
	Dest   string `short:"d" help:"Output directory (overrides options.output_dir)"`

	Modern     bool `help:"Dual modern/legacy build (not available)" hidden:""`
	Report     bool `help:"Generate report.html describing the bundle"`
	ReportJSON bool `name:"report-json" help:"Generate report.json describing the bundle"`
	Watch      bool `short:"w" help:"Rebuild on changes"`
	NoClean    bool `name:"no-clean" help:"Do not remove the output directory before building"`

	SrcHash args.TriBool `name:"srchash" help:"Skip the build when the output directory is unchanged since the last fingerprint. Only the output is hashed, so source edits alone do not force a rebuild (--srchash=false always rebuilds and records the fingerprint)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	return dispatchCommand(g, root, "build", b.Entry, b.Arguments())
}

// Arguments returns the flags that were given, keyed by their CLI names.
func (b *BuildCmd) Arguments() args.Arguments {
	a := args.Arguments{}
	setString(a, "mode", b.Mode)
	setString(a, "target", b.Target)
	setString(a, "name", b.Name)
	setString(a, "dest", b.Dest)
	setTrue(a, "modern", b.Modern)
	setTrue(a, "report", b.Report)
	setTrue(a, "report-json", b.ReportJSON)
	setTrue(a, "watch", b.Watch)
	if b.NoClean {
		a.Set("clean", false)
	}
	if b.SrcHash.IsSet() {
		a.Set(gate.FlagName, b.SrcHash.Value())
	}
	return a
}
