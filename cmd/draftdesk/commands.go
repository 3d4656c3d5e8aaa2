package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"draftdesk/internal/core/contextdetect"
	"draftdesk/internal/core/highlight"
	"draftdesk/internal/core/markdown"

	"github.com/alecthomas/kong"
)

// Globals is handed to every command's Run
type Globals struct {
	Out io.Writer
	In  io.Reader
}

// CLI is the command tree
type CLI struct {
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render   RenderCmd   `cmd:"" help:"Render markdown to an HTML fragment"`
	Detect   DetectCmd   `cmd:"" help:"Detect the documentation domain of some text"`
	Patterns PatternsCmd `cmd:"" help:"Inspect pattern tables"`
}

// RenderCmd renders a file or stdin
type RenderCmd struct {
	Highlight bool   `help:"Syntax highlight language tagged code blocks"`
	Style     string `help:"Chroma style used with --highlight" default:"${style}"`
	CSS       bool   `help:"Print the stylesheet for --style instead of rendering"`
	File      string `arg:"" optional:"" help:"Markdown file, stdin when omitted" type:"existingfile"`
}

// Run implements the render command
func (c *RenderCmd) Run(g *Globals) error {
	if c.CSS {
		css, err := highlight.New(c.Style).CSS()
		if err != nil {
			return err
		}
		_, err = io.WriteString(g.Out, css)
		return err
	}

	src, err := readSource(c.File, g.In)
	if err != nil {
		return err
	}
	out := markdown.Render(src)
	if c.Highlight {
		out = highlight.New(c.Style).Apply(out)
	}
	_, err = io.WriteString(g.Out, out)
	return err
}

// DetectCmd classifies text against a pattern table
type DetectCmd struct {
	Explain  bool     `help:"Print per domain scores as JSON"`
	Patterns string   `help:"Pattern table override (json, yaml or toml)" type:"existingfile"`
	Text     []string `arg:"" help:"Text to classify, joined with spaces"`
}

// Run implements the detect command
func (c *DetectCmd) Run(g *Globals) error {
	t, err := loadTable(c.Patterns)
	if err != nil {
		return err
	}
	text := strings.Join(c.Text, " ")

	if c.Explain {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Explain(text))
	}

	tag, ok := t.Detect(text)
	if !ok {
		_, err = fmt.Fprintln(g.Out, "no match")
		return err
	}
	if _, err := fmt.Fprintln(g.Out, tag); err != nil {
		return err
	}
	for _, l := range t.Links(tag) {
		if _, err := fmt.Fprintf(g.Out, "  %s  %s\n", l.Title, l.URL); err != nil {
			return err
		}
	}
	return nil
}

// PatternsCmd groups the table subcommands
type PatternsCmd struct {
	Validate PatternsValidateCmd `cmd:"" help:"Check that a pattern file compiles"`
	Dump     PatternsDumpCmd     `cmd:"" help:"Print a pattern table"`
}

// PatternsValidateCmd compiles a table file and reports its domains
type PatternsValidateCmd struct {
	File string `arg:"" help:"Pattern table (json, yaml or toml)" type:"existingfile"`
}

// Run implements patterns validate
func (c *PatternsValidateCmd) Run(g *Globals) error {
	t, err := contextdetect.LoadFile(c.File)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Out, "ok: %d domains (%s)\n", len(t.Tags()), strings.Join(t.Tags(), ", "))
	return err
}

// PatternsDumpCmd prints the embedded table or an override in any supported format
type PatternsDumpCmd struct {
	Format   string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Patterns string `help:"Pattern table override, the embedded table when omitted" type:"existingfile"`
}

// Run implements patterns dump
func (c *PatternsDumpCmd) Run(g *Globals) error {
	t, err := loadTable(c.Patterns)
	if err != nil {
		return err
	}
	b, err := t.Encode(contextdetect.Format(c.Format))
	if err != nil {
		return err
	}
	_, err = g.Out.Write(b)
	return err
}

func loadTable(path string) (*contextdetect.Table, error) {
	if path == "" {
		return contextdetect.Load()
	}
	return contextdetect.LoadFile(path)
}

func readSource(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
