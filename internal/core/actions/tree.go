package actions

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// panel classes emitted by the renderer around copyable content
const (
	classCodePanel  = "code-block"
	classTablePanel = "table-block"
)

func parse(doc string) (*html.Node, error) {
	return html.Parse(strings.NewReader(doc))
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	return ok && slices.Contains(strings.Fields(v), class)
}

// walk visits n and its descendants in document order, stop ends the walk early
func walk(n *html.Node, visit func(*html.Node) (stop bool)) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

// buttons returns every button carrying the action class, in document order
func buttons(root *html.Node, action string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Button && hasClass(n, action) {
			out = append(out, n)
		}
		return false
	})
	return out
}

func closest(n *html.Node, class string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && hasClass(p, class) {
			return p
		}
	}
	return nil
}

func first(root *html.Node, a atom.Atom) *html.Node {
	var hit *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			hit = n
			return true
		}
		return false
	})
	return hit
}

// textContent concatenates the text below n, button labels are skipped
func textContent(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			return
		case n.Type == html.ElementNode && n.DataAtom == atom.Button:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

// tsv joins the cells of every row with tabs and the rows with newlines
func tsv(table *html.Node) string {
	var rows []string
	walk(table, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Tr {
			return false
		}
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Th || c.DataAtom == atom.Td) {
				cells = append(cells, strings.TrimSpace(textContent(c)))
			}
		}
		rows = append(rows, strings.Join(cells, "\t"))
		return false
	})
	return strings.Join(rows, "\n")
}
