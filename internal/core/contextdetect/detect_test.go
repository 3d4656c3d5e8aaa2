package contextdetect

import "testing"

func mustTable(t *testing.T) *Table {
	t.Helper()
	tb, err := Load()
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	return tb
}

func mustParse(t *testing.T, doc string) *Table {
	t.Helper()
	tb, err := Parse([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tb
}

func TestDetect_EmptyIsNone(t *testing.T) {
	tb := mustTable(t)
	if tag, ok := tb.Detect(""); ok || tag != "" {
		t.Fatalf("empty input should be none, got %q %v", tag, ok)
	}
	r := tb.Explain("")
	if r.Reason != ReasonEmpty || r.Scores != nil {
		t.Fatalf("unexpected explain for empty: %+v", r)
	}

	var nilTable *Table
	if _, ok := nilTable.Detect("po_1"); ok {
		t.Fatalf("nil table must never match")
	}
}

func TestDetect_IDPatternWinsOutright(t *testing.T) {
	tb := mustTable(t)
	tag, ok := tb.Detect("my po_123 payout never arrived")
	if !ok || tag != "payouts" {
		t.Fatalf("want payouts, got %q %v", tag, ok)
	}
	r := tb.Explain("my po_123 payout never arrived")
	if r.Best < 15 {
		t.Fatalf("id match should score at least 15, got %d", r.Best)
	}
}

func TestDetect_WeakTieIsNone(t *testing.T) {
	tb := mustTable(t)
	tag, ok := tb.Detect("I have a question about tax and also billing")
	if ok {
		t.Fatalf("weak tie should be none, got %q", tag)
	}
	r := tb.Explain("I have a question about tax and also billing")
	if r.Best != 1 || r.RunnerUp != 1 {
		t.Fatalf("want best=1 runnerUp=1, got %d/%d", r.Best, r.RunnerUp)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	tb := mustTable(t)
	inputs := []string{
		"",
		"refund re_abc failed after the dispute dp_9",
		"Webhook signature mismatch on req_77, api key rotated",
		"nothing relevant here",
	}
	for _, in := range inputs {
		a1, ok1 := tb.Detect(in)
		a2, ok2 := tb.Detect(in)
		if a1 != a2 || ok1 != ok2 {
			t.Fatalf("non deterministic for %q: %q/%v vs %q/%v", in, a1, ok1, a2, ok2)
		}
	}
}

func TestDetect_ScoringWeights(t *testing.T) {
	tb := mustParse(t, `
version: 1
domains:
  - tag: alpha
    id_pattern: "\\bal_[0-9]+"
    keywords: [apple]
    strong_phrases: [green apple pie]
`)
	cases := []struct {
		in   string
		want int
	}{
		{"al_1", 15},
		{"AL_1", 0}, // id pattern runs against raw text, case sensitive unless the pattern says so
		{"Green Apple Pie", 5 + 1},
		{"apple APPLE", 1}, // a keyword counts once
		{"pineapple", 0},   // whole word only
		{"al_1 green apple pie", 15 + 5 + 1},
	}
	for _, c := range cases {
		r := tb.Explain(c.in)
		if r.Scores[0].Score != c.want {
			t.Fatalf("%q: want %d got %d", c.in, c.want, r.Scores[0].Score)
		}
	}
}

func TestDetect_AmbiguitySuppression(t *testing.T) {
	tb := mustParse(t, `
version: 1
domains:
  - tag: first
    keywords: [a1, a2, a3, a4]
  - tag: second
    keywords: [b1, b2, b3, b4]
`)

	// 3 vs 2: lead under 2 and best above 2 -> ambiguous
	if tag, ok := tb.Detect("a1 a2 a3 b1 b2"); ok {
		t.Fatalf("expected ambiguous none, got %q", tag)
	}
	if r := tb.Explain("a1 a2 a3 b1 b2"); r.Reason != ReasonAmbiguous {
		t.Fatalf("want ambiguous reason, got %q", r.Reason)
	}

	// 4 vs 2: lead of 2 wins
	if tag, ok := tb.Detect("a1 a2 a3 a4 b1 b2"); !ok || tag != "first" {
		t.Fatalf("want first, got %q %v", tag, ok)
	}

	// 3 vs 0
	if tag, ok := tb.Detect("b1 b2 b3"); !ok || tag != "second" {
		t.Fatalf("want second, got %q %v", tag, ok)
	}

	// exactly 2 with no contest stays none
	if tag, ok := tb.Detect("b1 b2"); ok {
		t.Fatalf("score 2 should be none, got %q", tag)
	}
	if r := tb.Explain("b1 b2"); r.Reason != ReasonWeak {
		t.Fatalf("want weak reason, got %q", r.Reason)
	}
}

func TestDetect_StrongIDIgnoresCloseness(t *testing.T) {
	tb := mustParse(t, `
version: 1
domains:
  - tag: ids
    id_pattern: "\\bid_[0-9]+"
  - tag: words
    keywords: [k1, k2, k3, k4, k5, k6, k7, k8, k9, k10, k11, k12, k13, k14]
`)
	in := "id_1 k1 k2 k3 k4 k5 k6 k7 k8 k9 k10 k11 k12 k13 k14"
	// 15 vs 14 would be ambiguous for a weak score, a 15 always wins
	if tag, ok := tb.Detect(in); !ok || tag != "ids" {
		t.Fatalf("want ids, got %q %v", tag, ok)
	}
}

func TestDetect_TwoVariableRunnerUp(t *testing.T) {
	// order: 3, 5, 4. Running best goes 3 -> 5 with runnerUp 3, then 4 > 3 updates
	// runnerUp to 4 without touching best, so 5 vs 4 is ambiguous
	tb := mustParse(t, `
version: 1
domains:
  - tag: a
    keywords: [a1, a2, a3]
  - tag: b
    keywords: [b1, b2, b3, b4, b5]
  - tag: c
    keywords: [c1, c2, c3, c4]
`)
	r := tb.Explain("a1 a2 a3 b1 b2 b3 b4 b5 c1 c2 c3 c4")
	if r.Best != 5 || r.RunnerUp != 4 {
		t.Fatalf("want 5/4 got %d/%d", r.Best, r.RunnerUp)
	}
	if r.OK {
		t.Fatalf("5 vs 4 should be ambiguous")
	}

	// order: 5, 3 then 4. best stays 5, runnerUp 3 then 4
	tb2 := mustParse(t, `
version: 1
domains:
  - tag: b
    keywords: [b1, b2, b3, b4, b5]
  - tag: a
    keywords: [a1, a2, a3]
  - tag: c
    keywords: [c1, c2, c3, c4]
`)
	r2 := tb2.Explain("a1 a2 a3 b1 b2 b3 b4 b5 c1 c2 c3 c4")
	if r2.Best != 5 || r2.RunnerUp != 4 || r2.OK {
		t.Fatalf("unexpected %+v", r2)
	}
}

func TestDetect_TieKeepsEarlierDomain(t *testing.T) {
	tb := mustParse(t, `
version: 1
domains:
  - tag: early
    id_pattern: "\\bx_[0-9]+"
  - tag: late
    id_pattern: "\\bx_[0-9]+"
`)
	if tag, ok := tb.Detect("x_1"); !ok || tag != "early" {
		t.Fatalf("tie should keep the earlier domain, got %q %v", tag, ok)
	}
}
