// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the placeholder title for a conversation that has no
// messages yet. Replaced when the first user message is appended.
const DefaultTitle = "New Conversation"

// TitleMaxLen is the maximum title length derived from a first message.
const TitleMaxLen = 50

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds an ordered, titled message history with lifecycle
// timestamps. Messages are append-only except for the in-place resolution
// of a pending placeholder.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Messages, insertion order = conversation order.
	Messages []*Message `json:"messages"`
}

// NewConversation creates a new empty conversation with a generated ID,
// placeholder title, and timestamps set to now.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message, bumps UpdatedAt, and derives the title from
// the first user message.
func (c *Conversation) AddMessage(msg *Message) {
	first := len(c.Messages) == 0
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	if first && msg.Role == RoleUser {
		c.Title = DeriveTitle(msg.Content)
	}
}

// AppendPending appends an assistant placeholder without bumping UpdatedAt
// (the user message appended in the same exchange already did).
func (c *Conversation) AppendPending(msg *Message) {
	c.Messages = append(c.Messages, msg)
}

// GetMessageByID returns the message with the given ID, or nil.
func (c *Conversation) GetMessageByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// GetLastMessage returns the most recent message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// HasPending reports whether a send is outstanding on this conversation.
// Invariant: at most one message is pending at any time.
func (c *Conversation) HasPending() bool {
	for _, msg := range c.Messages {
		if msg.Pending {
			return true
		}
	}
	return false
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Touch bumps UpdatedAt. Used when a placeholder resolves successfully;
// the failure path deliberately does not call it.
func (c *Conversation) Touch() {
	c.UpdatedAt = time.Now()
}

// =============================================================================
// TITLE DERIVATION
// =============================================================================

// DeriveTitle builds a conversation title from the first user message:
// the first TitleMaxLen runes, "…" appended when truncated, newlines
// collapsed to spaces.
func DeriveTitle(content string) string {
	title := content
	runes := []rune(title)
	if len(runes) > TitleMaxLen {
		title = string(runes[:TitleMaxLen]) + "…"
	}
	return singleLine(title)
}

func singleLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n':
			out = append(out, ' ')
		case '\r':
			// dropped
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// =============================================================================
// SNAPSHOT HELPERS
// =============================================================================

// Preview returns a one-line preview of the newest content, for list
// displays. A pending placeholder previews as the user message that
// produced it.
func (c *Conversation) Preview() string {
	last := c.GetLastMessage()
	if last != nil && last.Pending && len(c.Messages) >= 2 {
		last = c.Messages[len(c.Messages)-2]
	}
	if last == nil || last.IsEmpty() {
		return "Empty conversation"
	}
	return last.Preview(80)
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		clone.Messages[i] = msg.Clone()
	}
	return clone
}
