package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/spabuild/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.Out
	if out == nil {
		out = os.Stdout
	}
	return RunInit(out, root.ProjectDir, i.Force)
}

func RunInit(out io.Writer, dir string, force bool) error {
	_, _ = fmt.Fprintln(out, "Initializing spabuild project")
	path, err := config.Init(dir, force)
	if err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
