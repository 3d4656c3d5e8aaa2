// Package contextdetect maps free text to a documentation domain using a small
// ordered pattern table of id regexes, strong phrases and keywords
package contextdetect

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed patterns.json
var embedded []byte

// TableVersion is the only table document version we understand
const TableVersion = 1

// Format names a pattern table encoding
type Format string

// supported encodings
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

type rawLink struct {
	Title string `json:"title" yaml:"title" toml:"title"`
	URL   string `json:"url"   yaml:"url"   toml:"url"`
}

type rawDomain struct {
	Tag           string    `json:"tag"            yaml:"tag"            toml:"tag"`
	IDPattern     string    `json:"id_pattern"     yaml:"id_pattern"     toml:"id_pattern"`
	Keywords      []string  `json:"keywords"       yaml:"keywords"       toml:"keywords"`
	StrongPhrases []string  `json:"strong_phrases" yaml:"strong_phrases" toml:"strong_phrases"`
	Links         []rawLink `json:"links"          yaml:"links"          toml:"links"`
}

type rawTable struct {
	Version int            `json:"version" yaml:"version" toml:"version"`
	Meta    map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Domains []rawDomain    `json:"domains" yaml:"domains" toml:"domains"`
}

// Link is a quick reference link surfaced for a domain
type Link struct {
	Title string `json:"title" example:"Failed payouts"`
	URL   string `json:"url"   example:"https://docs.example.com/payouts/failures"`
}

// Domain is one compiled row of the pattern table
type Domain struct {
	Tag           string
	IDPattern     *regexp.Regexp // nil when the domain has no id shape
	Keywords      []string
	StrongPhrases []string // lowercased
	Links         []Link

	keywordRes []*regexp.Regexp // 1:1 with Keywords
}

// Table is an immutable, ordered, compiled pattern table
// iteration order is declaration order and decides ties
type Table struct {
	Version int
	Meta    map[string]any
	Source  string

	domains []Domain
	byTag   map[string]int
}

// Load returns the compiled embedded default table
func Load() (*Table, error) {
	t, err := Parse(embedded, FormatJSON)
	if err != nil {
		return nil, err
	}
	t.Source = "embedded"
	return t, nil
}

// MustLoad is Load for program start up
func MustLoad() *Table {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

// LoadFile reads and compiles a table override, picking the decoder by extension
func LoadFile(path string) (*Table, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("contextdetect: read %s: %w", path, err)
	}
	t, err := Parse(b, f)
	if err != nil {
		return nil, fmt.Errorf("contextdetect: %s: %w", path, err)
	}
	t.Source = path
	return t, nil
}

// FormatOf maps a file extension to a Format
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("contextdetect: unsupported pattern file %q (want .json, .yaml, .yml or .toml)", path)
	}
}

// Parse decodes and compiles a table document
func Parse(b []byte, f Format) (*Table, error) {
	var raw rawTable
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("contextdetect: parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(b, &raw); err != nil {
			return nil, fmt.Errorf("contextdetect: parse yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(b), &raw); err != nil {
			return nil, fmt.Errorf("contextdetect: parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("contextdetect: unknown format %q", f)
	}
	return compile(raw)
}

func compile(raw rawTable) (*Table, error) {
	if raw.Version != TableVersion {
		return nil, fmt.Errorf("contextdetect: unsupported table version %d (want %d)", raw.Version, TableVersion)
	}
	if len(raw.Domains) == 0 {
		return nil, fmt.Errorf("contextdetect: table has no domains")
	}

	t := &Table{
		Version: raw.Version,
		Meta:    raw.Meta,
		domains: make([]Domain, 0, len(raw.Domains)),
		byTag:   make(map[string]int, len(raw.Domains)),
	}

	for i, rd := range raw.Domains {
		tag := strings.TrimSpace(rd.Tag)
		if tag == "" {
			return nil, fmt.Errorf("contextdetect: domain %d has an empty tag", i)
		}
		if _, dup := t.byTag[tag]; dup {
			return nil, fmt.Errorf("contextdetect: duplicate domain tag %q", tag)
		}

		d := Domain{Tag: tag}
		if p := strings.TrimSpace(rd.IDPattern); p != "" {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("contextdetect: %s id_pattern: %w", tag, err)
			}
			d.IDPattern = re
		}

		for _, kw := range rd.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				return nil, fmt.Errorf("contextdetect: %s has an empty keyword", tag)
			}
			d.Keywords = append(d.Keywords, kw)
			d.keywordRes = append(d.keywordRes, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
		}

		for _, sp := range rd.StrongPhrases {
			sp = strings.ToLower(strings.TrimSpace(sp))
			if sp == "" {
				return nil, fmt.Errorf("contextdetect: %s has an empty strong phrase", tag)
			}
			d.StrongPhrases = append(d.StrongPhrases, sp)
		}

		for _, l := range rd.Links {
			d.Links = append(d.Links, Link(l))
		}

		t.byTag[tag] = len(t.domains)
		t.domains = append(t.domains, d)
	}
	return t, nil
}

// Encode writes t back out as a table document in format f
// Parse(Encode(t)) yields a table that detects identically
func (t *Table) Encode(f Format) ([]byte, error) {
	raw := rawTable{Version: t.Version, Meta: t.Meta, Domains: make([]rawDomain, 0, len(t.domains))}
	for _, d := range t.domains {
		rd := rawDomain{
			Tag:           d.Tag,
			Keywords:      d.Keywords,
			StrongPhrases: d.StrongPhrases,
			Links:         make([]rawLink, 0, len(d.Links)),
		}
		if d.IDPattern != nil {
			rd.IDPattern = d.IDPattern.String()
		}
		for _, l := range d.Links {
			rd.Links = append(rd.Links, rawLink(l))
		}
		raw.Domains = append(raw.Domains, rd)
	}

	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("contextdetect: encode json: %w", err)
		}
		return append(b, '\n'), nil
	case FormatYAML:
		b, err := yaml.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("contextdetect: encode yaml: %w", err)
		}
		return b, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
			return nil, fmt.Errorf("contextdetect: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("contextdetect: unknown format %q", f)
	}
}

// Domains returns a copy of the domain rows in table order
func (t *Table) Domains() []Domain {
	out := make([]Domain, len(t.domains))
	copy(out, t.domains)
	return out
}

// Tags returns the domain tags in table order
func (t *Table) Tags() []string {
	out := make([]string, len(t.domains))
	for i, d := range t.domains {
		out[i] = d.Tag
	}
	return out
}

// Links returns the quick reference links for tag, nil for unknown tags
func (t *Table) Links(tag string) []Link {
	i, ok := t.byTag[tag]
	if !ok {
		return nil
	}
	out := make([]Link, len(t.domains[i].Links))
	copy(out, t.domains[i].Links)
	return out
}
