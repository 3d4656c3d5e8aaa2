// Package markdown renders the markdown-like output of the drafting model into
// styled HTML. It is re-run from scratch on every streamed chunk, so it keeps no
// state between calls and tolerates half written input such as open fences
package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// Action classes carried by the buttons the renderer emits
const (
	ActionCopyCode  = "copy-code"
	ActionCopyURL   = "copy-url"
	ActionCopyTable = "copy-table"
)

// placeholder tokens are wrapped in private use runes
const (
	phOpen  = "\uE000PH"
	phClose = "\uE001"
)

var (
	rePlaceholder = regexp.MustCompile(phOpen + `(\d+)` + phClose)

	reListItem   = regexp.MustCompile(`^[-*]\s+(.*)$`)
	reHeading    = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	reRule       = regexp.MustCompile(`^(?:-{3,}|_{3,})$`)
	reBlockquote = regexp.MustCompile(`^&gt;\s?(.*)$`)
)

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape replaces &, < and > with entities and leaves every other byte alone
func Escape(s string) string { return escaper.Replace(s) }

// Render converts text into an HTML fragment
func Render(text string) string {
	if text == "" {
		return ""
	}

	s := Escape(text)

	var ph placeholders
	s = ph.extract(s, reThinking, renderThinking)
	s = ph.extract(s, reFence, renderFence)
	s = ph.extract(s, reTable, renderTable)

	s = Inline(s)

	return segment(s, &ph)
}

// placeholders is the per call side table of pre rendered block fragments
type placeholders struct {
	frags []string
}

func (p *placeholders) token(i int) string { return phOpen + strconv.Itoa(i) + phClose }

// extract swaps every match of re for a token on its own line
func (p *placeholders) extract(s string, re *regexp.Regexp, render func(m []string) string) string {
	return re.ReplaceAllStringFunc(s, func(match string) string {
		m := re.FindStringSubmatch(match)
		p.frags = append(p.frags, render(m))
		return "\n" + p.token(len(p.frags)-1) + "\n"
	})
}

func (p *placeholders) has(line string) bool {
	return len(p.frags) > 0 && strings.Contains(line, phOpen)
}

func (p *placeholders) restore(s string) string {
	if len(p.frags) == 0 {
		return s
	}
	return rePlaceholder.ReplaceAllStringFunc(s, func(tok string) string {
		m := rePlaceholder.FindStringSubmatch(tok)
		i, err := strconv.Atoi(m[1])
		if err != nil || i < 0 || i >= len(p.frags) {
			return ""
		}
		return p.frags[i]
	})
}

// segment walks the inline formatted text line by line and builds block elements
func segment(s string, ph *placeholders) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	inList := false
	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, raw := range strings.Split(s, "\n") {
		line := strings.TrimSpace(raw)

		if ph.has(line) {
			closeList()
			b.WriteString(ph.restore(line))
			b.WriteByte('\n')
			continue
		}

		if m := reListItem.FindStringSubmatch(line); m != nil {
			if !inList {
				b.WriteString(`<ul class="md-list">` + "\n")
				inList = true
			}
			b.WriteString(`<li class="md-li">` + m[1] + "</li>\n")
			continue
		}
		closeList()

		switch {
		case line == "":
			// blank lines only separate blocks
		case reHeading.MatchString(line):
			m := reHeading.FindStringSubmatch(line)
			n := strconv.Itoa(len(m[1]))
			b.WriteString(`<h` + n + ` class="md-h` + n + `">` + m[2] + `</h` + n + ">\n")
		case reRule.MatchString(line):
			b.WriteString(`<hr class="md-hr">` + "\n")
		case reBlockquote.MatchString(line):
			m := reBlockquote.FindStringSubmatch(line)
			b.WriteString(`<blockquote class="md-quote">` + m[1] + "</blockquote>\n")
		default:
			b.WriteString(`<p class="md-p">` + line + "</p>\n")
		}
	}
	closeList()

	return strings.TrimSuffix(b.String(), "\n")
}
