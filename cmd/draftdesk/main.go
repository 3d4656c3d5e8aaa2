// Command draftdesk runs the rendering and detection cores from a terminal
package main

import (
	"io"
	"os"

	"draftdesk/internal/core/highlight"
	"draftdesk/internal/core/version"

	"github.com/alecthomas/kong"
)

func options() []kong.Option {
	return []kong.Option{
		kong.Name("draftdesk"),
		kong.Description("Render markdown, detect documentation domains and manage pattern tables."),
		kong.UsageOnError(),
		kong.Vars{
			"version": version.Named("draftdesk").Version,
			"style":   highlight.DefaultStyle,
		},
	}
}

// run parses args and executes the selected command against g
func run(args []string, g *Globals, extra ...kong.Option) error {
	var cli CLI
	parser, err := kong.New(&cli, append(options(), extra...)...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(g)
}

func main() {
	g := &Globals{Out: os.Stdout, In: os.Stdin}
	if err := run(os.Args[1:], g); err != nil {
		_, _ = io.WriteString(os.Stderr, "draftdesk: "+err.Error()+"\n")
		os.Exit(1)
	}
}
