package markdown

import (
	"regexp"
	"strings"
)

// block patterns run against escaped text
var (
	reThinking = regexp.MustCompile(`(?s)&lt;thinking&gt;(.*?)&lt;/thinking&gt;`)
	reFence    = regexp.MustCompile("(?s)```([A-Za-z0-9_+#.-]*)[ \t]*\n?(.*?)```")

	// header row, separator row, then one or more data rows
	reTable = regexp.MustCompile(`(?m)^[ \t]*\|.*\|[ \t]*\n[ \t]*\|[ \t]*:?-[-:| \t]*\|[ \t]*(?:\n[ \t]*\|.*\|[ \t]*)+$`)

	reCheckbox  = regexp.MustCompile(`^(?:-\s+|\d+\.\s+)?\[([ xX])\]\s*(.*)$`)
	reChecklist = regexp.MustCompile(`^(?:-\s+|\d+\.\s+)(.*)$`)
)

// thinking panel

func renderThinking(m []string) string {
	var b strings.Builder
	b.WriteString(`<details open class="thinking-block">`)
	b.WriteString(`<summary class="thinking-summary">QA audit log</summary>`)
	b.WriteString(`<div class="thinking-body">`)
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString(checklistRow(line))
	}
	b.WriteString(`</div></details>`)
	return b.String()
}

type rowState int

const (
	rowNote rowState = iota
	rowOpen
	rowChecked
	rowKilled
)

// classifyRow sorts one audit log line, text is the line without its list marker
func classifyRow(line string) (rowState, string) {
	if m := reCheckbox.FindStringSubmatch(line); m != nil {
		if m[1] == "x" || m[1] == "X" {
			return rowChecked, m[2]
		}
		return openOrKilled(m[2]), m[2]
	}
	if m := reChecklist.FindStringSubmatch(line); m != nil {
		return openOrKilled(m[1]), m[1]
	}
	return rowNote, line
}

func openOrKilled(text string) rowState {
	if strings.Contains(text, "KILL IT") || strings.Contains(text, "STOP") {
		return rowKilled
	}
	return rowOpen
}

func checklistRow(line string) string {
	state, text := classifyRow(line)
	switch state {
	case rowChecked:
		return `<div class="check-row check-done"><span class="check-icon text-green">&#10003;</span><span class="check-text">` + text + `</span></div>`
	case rowKilled:
		return `<div class="check-row check-kill"><span class="check-icon text-red">&#10007;</span><span class="check-text text-red">` + text + `</span></div>`
	case rowOpen:
		return `<div class="check-row check-open"><span class="check-icon">&#9744;</span><span class="check-text">` + text + `</span></div>`
	default:
		return `<div class="thinking-note">` + text + `</div>`
	}
}

// fenced code

func renderFence(m []string) string {
	lang := m[1]
	label := lang
	if label == "" {
		label = "text"
	}

	code := `<code>`
	if lang != "" {
		code = `<code class="language-` + lang + `">`
	}

	return `<div class="code-block">` +
		`<div class="code-header"><span class="code-lang">` + label + `</span>` +
		copyButton(ActionCopyCode, "Copy", "") +
		`</div>` +
		`<pre class="code-pre">` + code + strings.TrimSpace(m[2]) + `</code></pre>` +
		`</div>`
}

// tables

func renderTable(m []string) string {
	lines := strings.Split(strings.Trim(m[0], "\n"), "\n")
	header := splitRow(lines[0])

	var b strings.Builder
	b.WriteString(`<div class="table-block">`)
	b.WriteString(`<div class="table-header">` + copyButton(ActionCopyTable, "Copy as TSV", "") + `</div>`)
	b.WriteString(`<div class="table-scroll"><table class="md-table"><thead><tr>`)
	for _, c := range header {
		b.WriteString(`<th class="md-th">` + Inline(c) + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, row := range lines[2:] {
		if strings.TrimSpace(row) == "" {
			continue
		}
		b.WriteString(`<tr>`)
		for _, c := range splitRow(row) {
			b.WriteString(`<td class="md-td">` + Inline(c) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></div></div>`)
	return b.String()
}

// splitRow splits a table row on pipes, a pipe inside an open inline code span
// (odd number of backticks so far) belongs to the cell
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	var (
		cells   []string
		cur     string
		pending bool
	)
	for _, seg := range strings.Split(line, "|") {
		if pending {
			cur += "|" + seg
		} else {
			cur = seg
		}
		pending = strings.Count(cur, "`")%2 == 1
		if !pending {
			cells = append(cells, strings.TrimSpace(cur))
		}
	}
	if pending {
		cells = append(cells, strings.TrimSpace(cur))
	}
	return cells
}

func copyButton(action, label, url string) string {
	attrs := `type="button" class="` + action + `" data-action="` + action + `"`
	if url != "" {
		attrs += ` data-url="` + url + `"`
	}
	return `<button ` + attrs + `>` + label + `</button>`
}
