// Package pipeline runs one inbound message through the reply flow:
// length gate, crisis gate, history append, model call, reply
// finalization. All user-visible outcomes are fixed texts; the model
// reply is the only variable one.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"curhat-bot/internal/llm"
	"curhat-bot/internal/prompt"
	"curhat-bot/internal/safety"
	"curhat-bot/internal/storage"
)

// Store is the conversation-state surface the pipeline needs. The
// in-memory history.Manager implements it; a key-value backed store
// could replace it without touching the flow, as long as it applies the
// same window truncation at write time.
type Store interface {
	Get(userID int64) []llm.Message
	Summary(userID int64) string
	AppendUser(userID int64, content string)
	AppendAssistant(userID int64, content string)
	Reset(userID int64)
}

type Kind int

const (
	// KindSilent means nothing should be sent back at all.
	KindSilent Kind = iota
	KindReply
	KindCrisis
	KindRejected
	KindFailed
)

type Result struct {
	Kind Kind
	Text string
}

const (
	crisisResponse = "Aku denger kamu lagi berat banget sampai kepikiran menyakiti diri. " +
		"Kamu nggak harus hadapi ini sendirian.\n\n" +
		"Kalau kamu *sedang dalam bahaya sekarang*, tolong hubungi *112* (darurat) atau minta bantuan orang terdekat ya.\n" +
		"Kalau kamu bisa, coba hubungi teman/keluarga yang kamu percaya dan bilang kamu lagi butuh ditemenin.\n\n" +
		"Aku tetap di sini. Kamu sekarang lagi sendirian atau ada orang di dekat kamu?"

	retryResponse    = "Maaf, aku lagi error sebentar. Coba ulang ya 🙏"
	fallbackResponse = "Aku dengerin kok. Kamu mau cerita bagian yang paling beratnya yang mana?"

	ellipsis = "…"
)

type Service struct {
	history  Store
	composer *prompt.Composer
	llm      llm.Client
	recorder storage.Recorder

	maxTextLen  int
	maxReplyLen int

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(hist Store, composer *prompt.Composer, client llm.Client, recorder storage.Recorder, maxTextLen, maxReplyLen int) *Service {
	return &Service{
		history:     hist,
		composer:    composer,
		llm:         client,
		recorder:    recorder,
		maxTextLen:  maxTextLen,
		maxReplyLen: maxReplyLen,
		locks:       make(map[int64]*sync.Mutex),
	}
}

// Handle runs one message through the pipeline. Messages from the same
// user are serialized so two rapid sends cannot interleave their history
// appends; messages from different users proceed independently.
func (s *Service) Handle(ctx context.Context, userID int64, text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Kind: KindSilent}
	}

	if len([]rune(text)) > s.maxTextLen {
		s.record(userID, storage.KindRejected, text, "")
		return Result{
			Kind: KindRejected,
			Text: fmt.Sprintf("Pesan kamu panjang banget 😅 Bisa dipendekin sedikit nggak? (maks %d karakter)", s.maxTextLen),
		}
	}

	if safety.IsCrisis(text) {
		s.record(userID, storage.KindCrisis, text, crisisResponse)
		return Result{Kind: KindCrisis, Text: crisisResponse}
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	// Snapshot before the append so the new message appears exactly once
	// in the prompt, on the trailing USER line.
	snapshot := s.history.Get(userID)
	summary := s.history.Summary(userID)
	s.history.AppendUser(userID, text)

	full := s.composer.Compose(summary, snapshot, text)
	resp, err := s.llm.Generate(ctx, full)
	if err != nil {
		// The user's message stays in history; no assistant entry is
		// added for the failed turn.
		log.Printf("llm generate failed for user %d: %v", userID, err)
		s.record(userID, storage.KindFailed, text, "")
		return Result{Kind: KindFailed, Text: retryResponse}
	}

	reply := s.finalizeReply(resp.Content)
	s.history.AppendAssistant(userID, reply)
	s.record(userID, storage.KindChat, text, reply)

	log.Printf("llm response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)

	return Result{Kind: KindReply, Text: reply}
}

func (s *Service) finalizeReply(content string) string {
	reply := strings.TrimSpace(content)
	if reply == "" {
		return fallbackResponse
	}
	if r := []rune(reply); len(r) > s.maxReplyLen {
		reply = string(r[:s.maxReplyLen]) + ellipsis
	}
	return reply
}

func (s *Service) record(userID int64, kind, userMsg, reply string) {
	if s.recorder == nil {
		return
	}
	ev := storage.Event{
		Timestamp:         time.Now().UTC(),
		UserID:            userID,
		Kind:              kind,
		UserMessage:       userMsg,
		AssistantResponse: reply,
	}
	if err := s.recorder.AppendInteraction(ev); err != nil {
		log.Printf("failed to record interaction: %v", err)
	}
}

func (s *Service) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}
