// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jeranaias/stackchat-tui/internal/api"
	"github.com/jeranaias/stackchat-tui/internal/model"
	"github.com/jeranaias/stackchat-tui/internal/state"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage means the input was empty or whitespace.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSendInFlight means the conversation already has an unresolved reply.
	ErrSendInFlight = errors.New("a reply is already in flight")

	// ErrDisabled means input is administratively disabled.
	ErrDisabled = errors.New("input is disabled")
)

// =============================================================================
// EXCHANGE
// =============================================================================

// ChatClient is the backend surface Exchange needs. *api.Client satisfies it.
type ChatClient interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Exchange drives the optimistic send protocol: the user message and a
// pending assistant placeholder are committed to the store before the
// backend call starts, and the placeholder is later resolved or failed
// in place by ID. At most one reply is in flight per conversation.
type Exchange struct {
	store  *state.Store
	client ChatClient

	mu       sync.Mutex
	disabled bool
	wg       sync.WaitGroup
}

// New creates an Exchange bound to the given store and backend client.
func New(store *state.Store, client ChatClient) *Exchange {
	return &Exchange{
		store:  store,
		client: client,
	}
}

// SetDisabled toggles input. While disabled, Send rejects everything.
func (e *Exchange) SetDisabled(disabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disabled = disabled
}

// Disabled reports whether input is currently disabled.
func (e *Exchange) Disabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disabled
}

// Send validates text, commits the user message and a pending placeholder
// to the current conversation, and starts exactly one backend call to
// resolve the placeholder. If no conversation is selected, one is created
// first. Rejections leave the store untouched.
func (e *Exchange) Send(ctx context.Context, text string) error {
	if e.Disabled() {
		return ErrDisabled
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	convID := e.store.CurrentID()
	if convID == "" {
		convID = e.store.Create()
	}

	user := model.NewUserMessage(trimmed)
	placeholder := model.NewPendingMessage()
	// The pending guard and the append commit in one critical section
	// inside the store; there is no window for a second send to slip in.
	switch err := e.store.AppendExchange(convID, user, placeholder); {
	case errors.Is(err, state.ErrReplyInFlight):
		return ErrSendInFlight
	case errors.Is(err, state.ErrConversationNotFound):
		// The conversation vanished between the selection read and the
		// commit. Treat it like a fresh conversation instead of losing
		// the text; a fresh conversation cannot reject the append.
		convID = e.store.Create()
		if err := e.store.AppendExchange(convID, user, placeholder); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	settings := e.store.Settings()
	req := api.ChatRequest{
		Message:        trimmed,
		ConversationID: convID,
		Model:          settings.DefaultModel,
		Temperature:    settings.Temperature,
		MaxTokens:      settings.MaxTokens,
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		resp, err := e.client.Chat(ctx, req)
		if err != nil {
			e.store.FailPending(convID, placeholder.ID, describe(err))
			return
		}
		e.store.ResolvePending(convID, placeholder.ID, resp.Message, resp.Metadata)
	}()
	return nil
}

// Wait blocks until every in-flight call has resolved. Used on shutdown
// and by tests.
func (e *Exchange) Wait() {
	e.wg.Wait()
}

// describe turns a backend error into the text stored on the failed
// message. Backend detail text is preserved; a blank error gets a
// generic description.
func describe(err error) string {
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) && clientErr.Message != "" {
		return clientErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
