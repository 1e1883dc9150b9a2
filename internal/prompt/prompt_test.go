package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"curhat-bot/internal/llm"
)

func TestComposeSubstitutesSummaryPlaceholder(t *testing.T) {
	c := NewComposer("persona: {summary}", 14)
	out := c.Compose("", nil, "halo")
	if !strings.Contains(out, "persona: Belum ada ringkasan.") {
		t.Fatalf("placeholder not substituted: %q", out)
	}

	out = c.Compose("user sedang cari kerja", nil, "halo")
	if !strings.Contains(out, "persona: user sedang cari kerja") {
		t.Fatalf("summary not substituted: %q", out)
	}
}

func TestComposeRendersHistoryAndCue(t *testing.T) {
	c := NewComposer("P", 14)
	history := []llm.Message{
		{Role: "user", Content: "capek banget hari ini"},
		{Role: "assistant", Content: "kedengarannya berat ya"},
	}
	out := c.Compose("", history, "iya, banget")

	if !strings.Contains(out, "USER: capek banget hari ini\nASSISTANT: kedengarannya berat ya") {
		t.Fatalf("history block wrong: %q", out)
	}
	if !strings.Contains(out, "\n---\nUSER: iya, banget\nASSISTANT:") {
		t.Fatalf("missing new user line or assistant cue: %q", out)
	}
	if !strings.HasSuffix(out, "ASSISTANT:") {
		t.Fatalf("prompt must end with the assistant cue: %q", out)
	}
}

func TestComposeEmptyHistoryYieldsEmptyBlock(t *testing.T) {
	c := NewComposer("P", 14)
	out := c.Compose("", nil, "hai")
	if !strings.Contains(out, "Percakapan sejauh ini:\n\n---\n") {
		t.Fatalf("empty history should render an empty block: %q", out)
	}
}

func TestComposeCapsEntryLength(t *testing.T) {
	c := NewComposer("P", 14)
	long := strings.Repeat("x", 2000)
	out := c.Compose("", []llm.Message{{Role: "user", Content: long}}, "hai")

	start := strings.Index(out, "USER: ")
	line := out[start:]
	line = line[:strings.Index(line, "\n")]
	content := strings.TrimPrefix(line, "USER: ")
	if utf8.RuneCountInString(content) != 1501 {
		t.Fatalf("expected 1500 runes plus ellipsis, got %d", utf8.RuneCountInString(content))
	}
	if !strings.HasSuffix(content, "…") {
		t.Fatalf("truncated entry missing ellipsis marker")
	}
}

func TestComposeWindowsHistory(t *testing.T) {
	c := NewComposer("P", 1)
	history := []llm.Message{
		{Role: "user", Content: "old"},
		{Role: "assistant", Content: "older reply"},
		{Role: "user", Content: "recent"},
		{Role: "assistant", Content: "recent reply"},
	}
	out := c.Compose("", history, "hai")
	if strings.Contains(out, "USER: old\n") {
		t.Fatalf("entries beyond the window leaked into the prompt: %q", out)
	}
	if !strings.Contains(out, "USER: recent") || !strings.Contains(out, "ASSISTANT: recent reply") {
		t.Fatalf("recent entries missing: %q", out)
	}
}
