// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package state

import (
	"errors"
	"sort"
	"sync"

	"github.com/jeranaias/stackchat-tui/internal/config"
	"github.com/jeranaias/stackchat-tui/internal/model"
)

// Sentinel errors for exchange commits.
var (
	// ErrConversationNotFound means the target conversation was deleted.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrReplyInFlight means the conversation already holds an unresolved
	// pending placeholder.
	ErrReplyInFlight = errors.New("conversation already has a pending reply")
)

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is an immutable deep copy of the application state. Readers hold
// it freely; mutating it never affects the live store.
type Snapshot struct {
	Conversations map[string]*model.Conversation
	CurrentID     string
	Settings      config.Settings
}

// Current returns the selected conversation, or nil when no conversation is
// selected or the selected id does not exist (selection is not validated).
func (s Snapshot) Current() *model.Conversation {
	if s.CurrentID == "" {
		return nil
	}
	return s.Conversations[s.CurrentID]
}

// Sorted returns conversations ordered by recency (UpdatedAt descending).
// Display order is computed here, never stored.
func (s Snapshot) Sorted() []*model.Conversation {
	sorted := make([]*model.Conversation, 0, len(s.Conversations))
	for _, conv := range s.Conversations {
		sorted = append(sorted, conv)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	return sorted
}

// =============================================================================
// STORE
// =============================================================================

// Store is the single process-wide owner of conversations, the current
// selection, and settings. Every entry point applies a complete mutation
// under one mutex and notifies the change listener with an immutable
// snapshot, so state is never observed mid-mutation.
type Store struct {
	mu            sync.Mutex
	conversations map[string]*model.Conversation
	currentID     string
	settings      config.Settings

	// notifyMu serializes listener delivery so snapshots arrive in
	// commit order even when mutations race.
	notifyMu sync.Mutex
	onChange func(Snapshot)
}

// NewStore creates an empty store with the given settings.
func NewStore(settings config.Settings) *Store {
	return &Store{
		conversations: make(map[string]*model.Conversation),
		settings:      settings,
	}
}

// SetOnChange registers the listener invoked after every committed mutation.
// The listener runs outside the store lock and receives a deep-copied
// snapshot; persistence hangs off this hook.
func (s *Store) SetOnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	conversations := make(map[string]*model.Conversation, len(s.conversations))
	for id, conv := range s.conversations {
		conversations[id] = conv.Clone()
	}
	return Snapshot{
		Conversations: conversations,
		CurrentID:     s.currentID,
		Settings:      s.settings,
	}
}

// notify must be called with mu held. The snapshot is captured under mu,
// and notifyMu is taken before mu is released, so a later commit cannot
// overtake an earlier one on the way to the listener. The listener runs
// outside mu and must not mutate the store.
func (s *Store) notify() {
	snap := s.snapshotLocked()
	fn := s.onChange
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.mu.Lock()
	defer s.notifyMu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// Create allocates a new empty conversation, makes it current, and returns
// its id. The map insert and current-pointer move land in the same snapshot.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := model.NewConversation()
	s.conversations[conv.ID] = conv
	s.currentID = conv.ID
	s.notify()
	return conv.ID
}

// Select makes id the current conversation. Existence is not validated:
// selecting an unknown id leaves the derived current view absent.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentID = id
	s.notify()
}

// Delete removes the conversation. Deleting the current conversation clears
// the selection; deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return
	}
	delete(s.conversations, id)
	if s.currentID == id {
		s.currentID = ""
	}
	s.notify()
}

// CurrentID returns the current conversation id ("" when none).
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// =============================================================================
// SETTINGS OPERATIONS
// =============================================================================

// Settings returns the current settings.
func (s *Store) Settings() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies a partial settings update.
func (s *Store) UpdateSettings(patch config.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.Apply(patch)
	s.notify()
}

// ReplaceSettings swaps in a complete settings record (config hot-reload).
func (s *Store) ReplaceSettings(settings config.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.Validate()
	s.settings = settings
	s.notify()
}

// =============================================================================
// STARTUP RESTORE
// =============================================================================

// Restore replaces conversations and the current selection wholesale with
// state loaded from durable storage. Settings are set separately because
// they merge per-field over defaults. Restore does not notify: it runs
// before the first render and there is nothing to re-persist.
func (s *Store) Restore(conversations map[string]*model.Conversation, currentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conversations != nil {
		s.conversations = conversations
	}
	s.currentID = currentID
}

// =============================================================================
// EXCHANGE SUPPORT
// =============================================================================

// AppendExchange atomically appends the user message and the pending
// placeholder to the conversation, bumping UpdatedAt once and deriving the
// title when the user message is the first. The pending guard lives inside
// the same critical section as the append, so two racing sends can never
// both commit a placeholder to one conversation.
func (s *Store) AppendExchange(convID string, user, placeholder *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[convID]
	if !ok {
		return ErrConversationNotFound
	}
	if conv.HasPending() {
		return ErrReplyInFlight
	}
	conv.AddMessage(user)
	conv.AppendPending(placeholder)
	s.notify()
	return nil
}

// ResolvePending completes the placeholder with the backend's reply and
// bumps the conversation's UpdatedAt. A missing conversation or message
// (deleted while the call was in flight) is a silent no-op.
func (s *Store) ResolvePending(convID, msgID, content string, metadata map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[convID]
	if !ok {
		return
	}
	msg := conv.GetMessageByID(msgID)
	if msg == nil || !msg.Pending {
		return
	}
	msg.Resolve(content, metadata)
	conv.Touch()
	s.notify()
}

// FailPending completes the placeholder with the failure state. UpdatedAt is
// deliberately not bumped, matching the web frontend: a failed send leaves
// the conversation where it was in the recency order. Lookup miss is a
// silent no-op.
func (s *Store) FailPending(convID, msgID, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[convID]
	if !ok {
		return
	}
	msg := conv.GetMessageByID(msgID)
	if msg == nil || !msg.Pending {
		return
	}
	msg.Fail(description)
	s.notify()
}
