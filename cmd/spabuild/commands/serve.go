package commands

import (
	"strconv"

	"git.home.luguber.info/inful/spabuild/internal/args"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Entry string `arg:"" optional:"" help:"Entry file"`

	Mode  string `help:"Serve mode (default: development)"`
	Open  bool   `help:"Open the browser when the server is ready"`
	Copy  bool   `help:"Copy the local URL to the clipboard"`
	HTTPS bool   `name:"https" help:"Serve over HTTPS"`
	Host  string `help:"Host to bind"`
	Port  int    `help:"Port to bind"`

	Modern bool `help:"Dual modern/legacy build (not available)" hidden:""`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	return dispatchCommand(g, root, "serve", s.Entry, s.Arguments())
}

// Arguments returns the flags that were given, keyed by their CLI names.
func (s *ServeCmd) Arguments() args.Arguments {
	a := args.Arguments{}
	setString(a, "mode", s.Mode)
	setTrue(a, "open", s.Open)
	setTrue(a, "copy", s.Copy)
	setTrue(a, "https", s.HTTPS)
	setTrue(a, "modern", s.Modern)
	setString(a, "host", s.Host)
	if s.Port > 0 {
		a.Set("port", strconv.Itoa(s.Port))
	}
	return a
}
