package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/spabuild/cmd/spabuild/commands"
	"git.home.luguber.info/inful/spabuild/internal/dispatch"
	"git.home.luguber.info/inful/spabuild/internal/errors"
	"git.home.luguber.info/inful/spabuild/internal/metrics"
	"git.home.luguber.info/inful/spabuild/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	own, passthrough := commands.SplitPassthrough(argv)

	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("spabuild"),
		kong.Description("Build dispatcher for single-page application projects"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return errors.ExitInternal
	}
	ctx, err := parser.Parse(own)
	if err != nil {
		parser.Errorf("%s", err)
		return errors.ExitInput
	}

	d := dispatch.New()
	var reg *prom.Registry
	if cli.MetricsFile != "" {
		reg = prom.NewRegistry()
		d = d.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	g := &commands.Global{
		Logger:      slog.Default(),
		Dispatcher:  d,
		Out:         os.Stdout,
		RawArgs:     argv,
		Passthrough: passthrough,
	}
	err = ctx.Run(g, cli)

	if reg != nil {
		if werr := metrics.WriteTextfile(cli.MetricsFile, reg); werr != nil {
			slog.Warn("Failed to write metrics file", "path", cli.MetricsFile, "error", werr)
		}
	}

	return errors.NewCLIErrorAdapter(cli.Debug, slog.Default()).Report(err)
}
