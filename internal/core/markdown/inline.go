package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reURL        = regexp.MustCompile("https?://[^\\s<>\"'`]+")
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reInlineCode = regexp.MustCompile("`([^`\n]+)`")
	reLinkToken  = regexp.MustCompile(linkOpen + "([0-9]+)" + linkClose)
)

// autolinked anchors are parked between these while bold and code run
const (
	linkOpen  = "\uE002"
	linkClose = "\uE003"
)

// trailing characters that end a sentence rather than a URL
const urlTrailing = ".,;:!?)]}'\"*"

// Inline applies autolinks, bold and inline code to already escaped text
func Inline(s string) string {
	var links []string
	s = autolink(s, &links)
	s = reBold.ReplaceAllString(s, `<strong class="md-bold">$1</strong>`)
	s = reInlineCode.ReplaceAllString(s, `<code class="md-code">$1</code>`)
	if len(links) == 0 {
		return s
	}
	return reLinkToken.ReplaceAllStringFunc(s, func(tok string) string {
		i, err := strconv.Atoi(tok[len(linkOpen) : len(tok)-len(linkClose)])
		if err != nil || i >= len(links) {
			return tok
		}
		return links[i]
	})
}

func autolink(s string, links *[]string) string {
	return reURL.ReplaceAllStringFunc(s, func(raw string) string {
		url, rest := splitURL(raw)
		if url == "" {
			return raw
		}
		*links = append(*links, `<a class="md-link" href="`+url+`" target="_blank" rel="noopener noreferrer">`+url+`</a>`+
			copyButton(ActionCopyURL, "Copy", url))
		return linkOpen + strconv.Itoa(len(*links)-1) + linkClose + rest
	})
}

// splitURL cuts raw into the link and the text that follows it
// escaped angle brackets end a URL, trailing punctuation is shown after the link
func splitURL(raw string) (url, rest string) {
	cut := len(raw)
	for _, ent := range []string{"&lt;", "&gt;"} {
		if i := strings.Index(raw, ent); i >= 0 && i < cut {
			cut = i
		}
	}
	url, rest = raw[:cut], raw[cut:]

	trimmed := strings.TrimRight(url, urlTrailing)
	// a dangling entity fragment is punctuation too, e.g. "&amp;" at the very end
	if strings.HasSuffix(trimmed, "&amp") {
		trimmed = strings.TrimSuffix(trimmed, "&amp")
	}
	rest = url[len(trimmed):] + rest
	url = trimmed

	if strings.HasSuffix(url, "://") {
		return "", raw
	}
	return url, rest
}
