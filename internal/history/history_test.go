package history

import (
	"fmt"
	"testing"

	"curhat-bot/internal/llm"
)

func TestAppendGetReset(t *testing.T) {
	h := NewManager(14)
	userA := int64(1)
	userB := int64(2)

	h.AppendUser(userA, "hello")
	h.AppendAssistant(userA, "hi")
	h.AppendUser(userB, "foo")
	h.AppendAssistant(userB, "bar")

	msgsA := h.Get(userA)
	msgsB := h.Get(userB)

	if len(msgsA) != 2 || len(msgsB) != 2 {
		t.Fatalf("unexpected lengths: A=%d B=%d", len(msgsA), len(msgsB))
	}
	if msgsA[0].Role != "user" || msgsA[0].Content != "hello" {
		t.Fatalf("unexpected A[0]: %+v", msgsA[0])
	}
	if msgsA[1].Role != "assistant" || msgsA[1].Content != "hi" {
		t.Fatalf("unexpected A[1]: %+v", msgsA[1])
	}

	// Modifying the returned slice must not leak into internal state.
	msgsA[0] = llm.Message{Role: "user", Content: "mutated"}
	if got := h.Get(userA); got[0].Content != "hello" {
		t.Fatalf("internal state mutated via returned slice")
	}

	h.Reset(userA)
	if len(h.Get(userA)) != 0 {
		t.Fatalf("reset did not clear user A")
	}
	if len(h.Get(userB)) != 2 {
		t.Fatalf("reset should not affect other users")
	}
}

func TestWindowCapsAtTwiceMaxTurns(t *testing.T) {
	const maxTurns = 14
	h := NewManager(maxTurns)
	user := int64(7)

	for i := 0; i < 15; i++ {
		h.AppendUser(user, fmt.Sprintf("u%d", i))
		h.AppendAssistant(user, fmt.Sprintf("a%d", i))
	}

	msgs := h.Get(user)
	if len(msgs) != 2*maxTurns {
		t.Fatalf("expected %d entries, got %d", 2*maxTurns, len(msgs))
	}
	// Oldest pair (u0/a0) dropped, window starts at u1.
	if msgs[0].Content != "u1" || msgs[0].Role != "user" {
		t.Fatalf("unexpected oldest entry: %+v", msgs[0])
	}
	if last := msgs[len(msgs)-1]; last.Content != "a14" || last.Role != "assistant" {
		t.Fatalf("unexpected newest entry: %+v", last)
	}
}

func TestTruncationKeepsInsertionOrder(t *testing.T) {
	h := NewManager(2)
	user := int64(3)

	for i := 0; i < 6; i++ {
		h.AppendUser(user, fmt.Sprintf("m%d", i))
	}

	msgs := h.Get(user)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(msgs))
	}
	for i, m := range msgs {
		want := fmt.Sprintf("m%d", i+2)
		if m.Content != want {
			t.Fatalf("entry %d: got %q, want %q", i, m.Content, want)
		}
	}
}

func TestSummaryEmptyByDefault(t *testing.T) {
	h := NewManager(14)
	if s := h.Summary(42); s != "" {
		t.Fatalf("expected empty summary for fresh user, got %q", s)
	}
	h.AppendUser(42, "hi")
	if s := h.Summary(42); s != "" {
		t.Fatalf("expected empty summary after append, got %q", s)
	}
}
