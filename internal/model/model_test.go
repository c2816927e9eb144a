// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// TITLE DERIVATION TESTS
// =============================================================================

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "short message kept verbatim",
			content: "Hello world",
			want:    "Hello world",
		},
		{
			name:    "exactly fifty runes not truncated",
			content: strings.Repeat("a", 50),
			want:    strings.Repeat("a", 50),
		},
		{
			name:    "sixty runes truncated with ellipsis",
			content: strings.Repeat("a", 60),
			want:    strings.Repeat("a", 50) + "…",
		},
		{
			name:    "newlines collapsed to spaces",
			content: "line one\nline two",
			want:    "line one line two",
		},
		{
			name:    "multibyte runes counted as runes not bytes",
			content: strings.Repeat("é", 60),
			want:    strings.Repeat("é", 50) + "…",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveTitle(tc.content); got != tc.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestConversation_TitleDerivedFromFirstUserMessage(t *testing.T) {
	conv := NewConversation()
	if conv.Title != DefaultTitle {
		t.Fatalf("new conversation title = %q, want %q", conv.Title, DefaultTitle)
	}

	conv.AddMessage(NewUserMessage("Hello world"))
	if conv.Title != "Hello world" {
		t.Errorf("title after first message = %q, want %q", conv.Title, "Hello world")
	}

	// Later messages must not change the title.
	conv.AddMessage(NewUserMessage("Something else entirely"))
	if conv.Title != "Hello world" {
		t.Errorf("title after second message = %q, want %q", conv.Title, "Hello world")
	}
}

// =============================================================================
// PLACEHOLDER LIFECYCLE TESTS
// =============================================================================

func TestMessage_Resolve(t *testing.T) {
	msg := NewPendingMessage()
	if !msg.Pending {
		t.Fatal("NewPendingMessage should be pending")
	}
	if msg.Content != "" {
		t.Fatalf("pending content = %q, want empty", msg.Content)
	}

	id := msg.ID
	msg.Resolve("Hello!", map[string]any{"model": "llama3"})

	if msg.ID != id {
		t.Error("Resolve must not change the message ID")
	}
	if msg.Pending {
		t.Error("resolved message should not be pending")
	}
	if msg.Content != "Hello!" {
		t.Errorf("resolved content = %q, want %q", msg.Content, "Hello!")
	}
	if msg.Error != "" {
		t.Errorf("resolved message error = %q, want empty", msg.Error)
	}
	if msg.Metadata["model"] != "llama3" {
		t.Errorf("metadata model = %v, want llama3", msg.Metadata["model"])
	}
}

func TestMessage_Fail(t *testing.T) {
	msg := NewPendingMessage()
	msg.Fail("connection refused")

	if msg.Pending {
		t.Error("failed message should not be pending")
	}
	if msg.Content != FailedReplyContent {
		t.Errorf("failed content = %q, want fixed fallback", msg.Content)
	}
	if msg.Error != "connection refused" {
		t.Errorf("error = %q, want %q", msg.Error, "connection refused")
	}
}

func TestMessage_FailWithoutDescription(t *testing.T) {
	msg := NewPendingMessage()
	msg.Fail("")
	if msg.Error != "Unknown error" {
		t.Errorf("error = %q, want %q", msg.Error, "Unknown error")
	}
}

func TestMessage_ResolveIsTerminal(t *testing.T) {
	msg := NewPendingMessage()
	msg.Resolve("first", nil)
	msg.Resolve("second", nil)
	msg.Fail("late failure")

	if msg.Content != "first" {
		t.Errorf("content = %q, want %q (terminal transitions are one-shot)", msg.Content, "first")
	}
	if msg.Error != "" {
		t.Errorf("error = %q, want empty", msg.Error)
	}
}

// =============================================================================
// CONVERSATION INVARIANT TESTS
// =============================================================================

func TestConversation_HasPending(t *testing.T) {
	conv := NewConversation()
	if conv.HasPending() {
		t.Error("empty conversation should not have pending")
	}

	conv.AddMessage(NewUserMessage("Hi"))
	placeholder := NewPendingMessage()
	conv.AppendPending(placeholder)

	if !conv.HasPending() {
		t.Error("conversation with placeholder should report pending")
	}

	placeholder.Resolve("Hello!", nil)
	if conv.HasPending() {
		t.Error("pending should clear after resolution")
	}
}

func TestConversation_UniqueMessageIDs(t *testing.T) {
	conv := NewConversation()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewUserMessage("msg")
		conv.AddMessage(msg)
		if seen[msg.ID] {
			t.Fatalf("duplicate message ID %q", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestConversation_GetMessageByID(t *testing.T) {
	conv := NewConversation()
	msg := NewUserMessage("Hi")
	conv.AddMessage(msg)

	if got := conv.GetMessageByID(msg.ID); got != msg {
		t.Error("GetMessageByID should return the stored message")
	}
	if got := conv.GetMessageByID("nope"); got != nil {
		t.Error("GetMessageByID for unknown ID should return nil")
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversation()
	conv.AddMessage(NewUserMessage("Hi"))
	placeholder := NewPendingMessage()
	conv.AppendPending(placeholder)
	placeholder.Resolve("Hello!", map[string]any{"model": "llama3"})

	clone := conv.Clone()

	if clone.MessageCount() != conv.MessageCount() {
		t.Fatalf("clone has %d messages, want %d", clone.MessageCount(), conv.MessageCount())
	}

	// Mutating the clone must not leak into the original.
	clone.Messages[1].Metadata["model"] = "mistral"
	clone.AddMessage(NewUserMessage("extra"))

	if conv.Messages[1].Metadata["model"] != "llama3" {
		t.Error("clone metadata mutation leaked into original")
	}
	if conv.MessageCount() != 2 {
		t.Errorf("original has %d messages after clone append, want 2", conv.MessageCount())
	}
}

func TestConversation_Preview(t *testing.T) {
	conv := NewConversation()
	if got := conv.Preview(); got != "Empty conversation" {
		t.Errorf("Preview = %q, want empty placeholder", got)
	}

	conv.AddMessage(NewUserMessage("Hello there"))
	placeholder := NewPendingMessage()
	conv.AppendPending(placeholder)

	// A pending placeholder previews as the user message behind it.
	if got := conv.Preview(); got != "Hello there" {
		t.Errorf("Preview = %q, want the user message while pending", got)
	}

	placeholder.Resolve("General Kenobi", nil)
	if got := conv.Preview(); got != "General Kenobi" {
		t.Errorf("Preview = %q, want the newest resolved content", got)
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("one\ntwo\r\nthree")
	if got := msg.Preview(80); got != "one two three" {
		t.Errorf("Preview = %q, want %q", got, "one two three")
	}

	long := NewUserMessage(strings.Repeat("x", 100))
	got := long.Preview(10)
	runes := []rune(got)
	if len(runes) != 10 || runes[9] != '…' {
		t.Errorf("Preview truncation = %q, want 10 runes ending in ellipsis", got)
	}
}
