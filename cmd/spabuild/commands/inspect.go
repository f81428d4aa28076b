package commands

import "git.home.luguber.info/inful/spabuild/internal/args"

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Entry   string `arg:"" optional:"" help:"Entry file"`
	Mode    string `help:"Mode to resolve the configuration for (default: development)"`
	Target  string `help:"Build target to resolve the configuration for"`
	Verbose bool   `short:"v" help:"Include the raw argument set"`

	Modern bool `help:"Dual modern/legacy build (not available)" hidden:""`
}

func (i *InspectCmd) Run(g *Global, root *CLI) error {
	return dispatchCommand(g, root, "inspect", i.Entry, i.Arguments())
}

// Arguments returns the flags that were given, keyed by their CLI names.
func (i *InspectCmd) Arguments() args.Arguments {
	a := args.Arguments{}
	setString(a, "mode", i.Mode)
	setString(a, "target", i.Target)
	setTrue(a, "verbose", i.Verbose)
	setTrue(a, "modern", i.Modern)
	return a
}
