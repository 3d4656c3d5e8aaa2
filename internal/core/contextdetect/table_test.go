package contextdetect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Embedded(t *testing.T) {
	tb := mustTable(t)
	if tb.Version != TableVersion {
		t.Fatalf("want version %d got %d", TableVersion, tb.Version)
	}
	if tb.Source != "embedded" {
		t.Fatalf("unexpected source %q", tb.Source)
	}
	tags := tb.Tags()
	if len(tags) == 0 || tags[0] != "payouts" {
		t.Fatalf("expected payouts first, got %v", tags)
	}
	for _, d := range tb.Domains() {
		if len(d.Keywords) != len(d.keywordRes) {
			t.Fatalf("%s: keyword regex count mismatch", d.Tag)
		}
		for _, p := range d.StrongPhrases {
			if p != strings.ToLower(p) {
				t.Fatalf("%s: phrase not lowercased: %q", d.Tag, p)
			}
		}
	}
	if len(tb.Links("payouts")) == 0 {
		t.Fatalf("payouts should carry links")
	}
	if tb.Links("nope") != nil {
		t.Fatalf("unknown tag should have no links")
	}
}

func TestLinks_ReturnsCopy(t *testing.T) {
	tb := mustTable(t)
	l := tb.Links("payouts")
	l[0].Title = "mutated"
	if tb.Links("payouts")[0].Title == "mutated" {
		t.Fatalf("Links must not expose table internals")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"version":       "version: 2\ndomains:\n  - tag: a\n",
		"no domains":    "version: 1\ndomains: []\n",
		"empty tag":     "version: 1\ndomains:\n  - tag: ' '\n",
		"duplicate tag": "version: 1\ndomains:\n  - tag: a\n  - tag: a\n",
		"bad regex":     "version: 1\ndomains:\n  - tag: a\n    id_pattern: '(['\n",
		"empty keyword": "version: 1\ndomains:\n  - tag: a\n    keywords: ['']\n",
		"empty phrase":  "version: 1\ndomains:\n  - tag: a\n    strong_phrases: ['  ']\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc), FormatYAML); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	if _, err := Parse([]byte(`{"version":1,"domains":[{"tag":"a"}],"extra":true}`), FormatJSON); err == nil {
		t.Fatalf("json unknown fields should be rejected")
	}
	if _, err := Parse([]byte("x"), Format("xml")); err == nil {
		t.Fatalf("unknown format should fail")
	}
}

func TestLoadFile_AllFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"p.json": `{"version":1,"domains":[{"tag":"payouts","id_pattern":"\\bpo_[a-z0-9]+","keywords":["payout"]}]}`,
		"p.yaml": "version: 1\ndomains:\n  - tag: payouts\n    id_pattern: '\\bpo_[a-z0-9]+'\n    keywords: [payout]\n",
		"p.yml":  "version: 1\ndomains:\n  - tag: payouts\n    id_pattern: '\\bpo_[a-z0-9]+'\n    keywords: [payout]\n",
		"p.toml": "version = 1\n\n[[domains]]\ntag = \"payouts\"\nid_pattern = '\\bpo_[a-z0-9]+'\nkeywords = [\"payout\"]\n\n[[domains.links]]\ntitle = \"Payouts\"\nurl = \"https://docs.example.com/payouts\"\n",
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		tb, err := LoadFile(p)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if tb.Source != p {
			t.Fatalf("%s: source not recorded", name)
		}
		if tag, ok := tb.Detect("po_abc"); !ok || tag != "payouts" {
			t.Fatalf("%s: want payouts got %q %v", name, tag, ok)
		}
	}

	tb, err := LoadFile(filepath.Join(dir, "p.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if l := tb.Links("payouts"); len(l) != 1 || l[0].URL != "https://docs.example.com/payouts" {
		t.Fatalf("toml links not decoded: %+v", l)
	}
}

func TestLoadFile_BadInputs(t *testing.T) {
	if _, err := LoadFile("patterns.ini"); err == nil {
		t.Fatalf("unsupported extension should fail")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func TestMustLoad(t *testing.T) {
	if MustLoad() == nil {
		t.Fatalf("MustLoad returned nil")
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tb := mustTable(t)
	samples := []string{
		"my po_1234567890 payout never arrived",
		"the webhook signature check keeps failing",
		"hello there",
	}

	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			b, err := tb.Encode(f)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			back, err := Parse(b, f)
			if err != nil {
				t.Fatalf("parse encoded %s: %v\n%s", f, err, b)
			}
			if strings.Join(back.Tags(), ",") != strings.Join(tb.Tags(), ",") {
				t.Fatalf("tags changed: %v vs %v", back.Tags(), tb.Tags())
			}
			for _, s := range samples {
				if got, want := back.Explain(s), tb.Explain(s); got.Tag != want.Tag || got.Best != want.Best {
					t.Fatalf("%q: got %+v want %+v", s, got, want)
				}
			}
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if _, err := mustTable(t).Encode(Format("xml")); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
