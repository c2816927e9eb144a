// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/stackchat-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// FailedReplyContent is the fixed user-facing text substituted into a
// placeholder when the backend call fails.
const FailedReplyContent = "Sorry, I encountered an error processing your message."

// Message represents a single message in a conversation.
//
// JSON field names are camelCase to match the persisted state record shared
// with the web frontend.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Pending is true only for an assistant placeholder awaiting the
	// backend response. Cleared in place by Resolve or Fail.
	Pending bool `json:"pending,omitempty"`

	// Error holds the failure description after a failed send.
	Error string `json:"error,omitempty"`

	// Metadata is the backend's free-form response metadata (model name,
	// temperature, memory length). Present only on resolved replies.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewPendingMessage creates an assistant placeholder awaiting resolution.
func NewPendingMessage() *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Pending:   true,
	}
}

// =============================================================================
// PLACEHOLDER RESOLUTION
// =============================================================================

// Resolve completes a pending placeholder with the backend's reply.
// The message ID is unchanged; a non-pending message is left untouched.
func (m *Message) Resolve(content string, metadata map[string]any) {
	if !m.Pending {
		return
	}
	m.Content = content
	m.Metadata = metadata
	m.Pending = false
}

// Fail completes a pending placeholder with the fixed failure content and
// the failure description. A non-pending message is left untouched.
func (m *Message) Fail(description string) {
	if !m.Pending {
		return
	}
	if description == "" {
		description = "Unknown error"
	}
	m.Content = FailedReplyContent
	m.Error = description
	m.Pending = false
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Preview returns a truncated single-line preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.Content, "\n", " ")
	content = strings.ReplaceAll(content, "\r", "")
	return util.TruncateRunes(content, maxLen)
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// IsFailed returns true if the message is a failed assistant reply.
func (m *Message) IsFailed() bool {
	return m.Error != ""
}

// Clone returns a copy of the message with its own metadata map.
func (m *Message) Clone() *Message {
	clone := *m
	if m.Metadata != nil {
		clone.Metadata = make(map[string]any, len(m.Metadata))
		for k, v := range m.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}
