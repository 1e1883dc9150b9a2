// Package prompt renders the persona, the conversation window and the new
// user message into the single text blob the model receives.
package prompt

import (
	"strings"

	"curhat-bot/internal/llm"
)

// DefaultPersona is used when no system prompt file is configured. The
// {summary} marker is replaced at compose time.
const DefaultPersona = `Kamu adalah teman ngobrol untuk curhat. Gaya bahasa: Indonesia santai, hangat, nggak menggurui.

Tujuan:
- Bantu user merasa didengar dan dimengerti.
- Refleksikan emosi user (“kedengarannya kamu capek banget…”).
- Kalau cocok, bantu user merapikan pikiran dengan pertanyaan lembut.
- Kalau user minta saran, kasih opsi yang ringan dan aman.

Aturan:
- Jawaban singkat-menengah (3–8 kalimat), lalu tanya 1 pertanyaan terbuka yang lembut.
- Jangan menghakimi.
- Jangan mengaku sebagai psikolog/terapis.
- Jangan memberi diagnosis medis/psikiatris.
- Jangan memaksa user melakukan sesuatu.
- Jika user membahas bunuh diri/self-harm atau bahaya serius, jangan lanjutkan sesi seperti biasa.
  Tanggap dengan empati, anjurkan cari bantuan profesional/orang terdekat, dan sarankan layanan darurat.

Konteks singkat (jika ada):
{summary}`

const (
	summaryMarker    = "{summary}"
	emptySummaryText = "Belum ada ringkasan."
	maxEntryRunes    = 1500
	ellipsis         = "…"
)

type Composer struct {
	persona  string
	maxTurns int
}

func NewComposer(persona string, maxTurns int) *Composer {
	if persona == "" {
		persona = DefaultPersona
	}
	return &Composer{persona: persona, maxTurns: maxTurns}
}

// Compose builds the outbound prompt: persona with the summary substituted,
// the rendered history window, then the new USER line and the ASSISTANT cue.
// An empty history yields an empty history block, not an error.
func (c *Composer) Compose(summary string, history []llm.Message, userText string) string {
	if summary == "" {
		summary = emptySummaryText
	}
	persona := strings.ReplaceAll(c.persona, summaryMarker, summary)

	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\n---\nPercakapan sejauh ini:\n")
	sb.WriteString(c.renderHistory(history))
	sb.WriteString("\n---\nUSER: ")
	sb.WriteString(userText)
	sb.WriteString("\nASSISTANT:")
	return sb.String()
}

func (c *Composer) renderHistory(history []llm.Message) string {
	if limit := 2 * c.maxTurns; len(history) > limit {
		history = history[len(history)-limit:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		content := truncateRunes(strings.TrimSpace(m.Content), maxEntryRunes)
		lines = append(lines, strings.ToUpper(m.Role)+": "+content)
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + ellipsis
}
