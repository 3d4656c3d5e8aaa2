// Package highlight runs a chroma syntax highlighting pass over rendered HTML
package highlight

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no style is configured or the name is unknown
const DefaultStyle = "monokai"

// only language tagged code elements are highlighted
var reCode = regexp.MustCompile(`<code class="language-([A-Za-z0-9_+#.-]+)">([\s\S]*?)</code>`)

// Highlighter rewrites code elements into class based chroma token spans
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New returns a Highlighter for the named chroma style
func New(style string) *Highlighter {
	// styles.Get answers unknown and empty names with chroma's fallback, so check the registry
	s, ok := styles.Registry[strings.ToLower(strings.TrimSpace(style))]
	if !ok {
		s, ok = styles.Registry[DefaultStyle]
	}
	if !ok || s == nil {
		s = styles.Fallback
	}
	return &Highlighter{
		style: s,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Style returns the resolved style name
func (h *Highlighter) Style() string { return h.style.Name }

// Apply highlights every language tagged code element in doc
// a block that fails to tokenise or format is left as rendered
func (h *Highlighter) Apply(doc string) string {
	return reCode.ReplaceAllStringFunc(doc, func(block string) string {
		m := reCode.FindStringSubmatch(block)
		out, err := h.Code(m[1], html.UnescapeString(m[2]))
		if err != nil {
			return block
		}
		return `<code class="language-` + m[1] + ` chroma">` + out + `</code>`
	})
}

// Code highlights a single unescaped snippet and returns the token spans
func (h *Highlighter) Code(language, code string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CSS returns the stylesheet for the token classes
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}
