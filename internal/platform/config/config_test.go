package config

import (
	"reflect"
	"testing"
	"time"

	"draftdesk/internal/platform/testkit"
)

func TestPrefixNests(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("DRAFTS_")
	if got := c.Key("LLM_MODEL"); got != "CORE_DRAFTS_LLM_MODEL" {
		t.Fatalf("key %q", got)
	}
}

func TestMay_Typed(t *testing.T) {
	t.Setenv("CORE_DRAFTS_LLM_MODEL", " gpt-x ")
	t.Setenv("CORE_DRAFTS_LLM_BURST", "4")
	t.Setenv("CORE_DRAFTS_LLM_RPS", "0.5")
	t.Setenv("CORE_DRAFTS_STREAM", "true")
	t.Setenv("CORE_DRAFTS_LLM_TIMEOUT", "45s")

	c := New().Prefix("CORE_DRAFTS_")
	if got := c.MayString("LLM_MODEL", ""); got != "gpt-x" {
		t.Fatalf("string %q", got)
	}
	if got := c.MayInt("LLM_BURST", 1); got != 4 {
		t.Fatalf("int %d", got)
	}
	if got := c.MayFloat64("LLM_RPS", 0); got != 0.5 {
		t.Fatalf("float %v", got)
	}
	if !c.MayBool("STREAM", false) {
		t.Fatalf("bool")
	}
	if got := c.MayDuration("LLM_TIMEOUT", time.Second); got != 45*time.Second {
		t.Fatalf("duration %v", got)
	}
}

func TestMay_DefaultsOnMissingOrBad(t *testing.T) {
	t.Setenv("CORE_STATION_TICK_MS", "soon")
	t.Setenv("CORE_STATION_NAME", "   ")

	c := New().Prefix("CORE_STATION_")
	if got := c.MayInt("TICK_MS", 1000); got != 1000 {
		t.Fatalf("bad int should fall back, got %d", got)
	}
	if got := c.MayString("NAME", "draftdesk fm"); got != "draftdesk fm" {
		t.Fatalf("blank should fall back, got %q", got)
	}
	if got := c.MayDuration("MISSING", time.Minute); got != time.Minute {
		t.Fatalf("missing %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	t.Setenv("CORE_API_CORS_ORIGINS", "https://a.example, ,https://b.example,")
	t.Setenv("CORE_API_BLANKS", " , ,")
	c := New().Prefix("CORE_API_")

	want := []string{"https://a.example", "https://b.example"}
	if got := c.MayCSV("CORS_ORIGINS", nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("csv %v", got)
	}
	if got := c.MayCSV("BLANKS", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Fatalf("blanks %v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CORE_ACTIONS_")
	if got := c.MayEnum("CLIPBOARD", "system", "system", "memory"); got != "system" {
		t.Fatalf("default %q", got)
	}

	t.Setenv("CORE_ACTIONS_CLIPBOARD", "Memory")
	if got := c.MayEnum("CLIPBOARD", "system", "system", "memory"); got != "memory" {
		t.Fatalf("case folded %q", got)
	}

	t.Setenv("CORE_ACTIONS_CLIPBOARD", "pasteboard")
	testkit.MustPanic(t, func() { c.MayEnum("CLIPBOARD", "system", "system", "memory") })
}
