// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"sync"

	"github.com/jeranaias/stackchat-tui/internal/config"
	"github.com/jeranaias/stackchat-tui/internal/exchange"
	"github.com/jeranaias/stackchat-tui/internal/model"
	"github.com/jeranaias/stackchat-tui/internal/state"
	"github.com/jeranaias/stackchat-tui/internal/status"
	"github.com/jeranaias/stackchat-tui/internal/storage"
)

// =============================================================================
// VIEW
// =============================================================================

// View is the read model the UI renders from. It is a self-contained
// copy: the UI may hold it across frames without locking.
type View struct {
	// Conversations is sorted most recently updated first.
	Conversations []*model.Conversation
	// Current is the selected conversation, nil when none is selected.
	Current *model.Conversation
	// Connectivity is the backend status for the status bar.
	Connectivity status.Status
	// Settings are the live settings.
	Settings config.Settings
	// InputDisabled mirrors the exchange's disabled flag.
	InputDisabled bool
}

// =============================================================================
// CONTROLLER
// =============================================================================

// BackendClient is the full backend surface the controller wires up.
type BackendClient interface {
	exchange.ChatClient
	status.Prober
	SetBaseURL(baseURL string)
}

// Controller composes the store, the send protocol, the connectivity
// monitor, and persistence behind a single intent-based API. Every
// committed state change is persisted and pushed to one subscriber.
type Controller struct {
	store    *state.Store
	exchange *exchange.Exchange
	monitor  *status.Monitor
	adapter  *storage.Adapter
	client   BackendClient

	mu           sync.Mutex
	connectivity status.Status
	subscriber   func(View)
}

// New builds a controller: saved state is loaded before anything can
// observe the store, so restoration never looks like a user mutation.
// Settings precedence: persisted record over defaults, then the caller's
// resolved config-file/env/flag settings win wherever they deviate from
// the defaults.
func New(client BackendClient, store storage.Storage, settings config.Settings) *Controller {
	adapter := storage.NewAdapter(store)

	loaded := adapter.Load()
	if loaded.Found {
		overrides := settings.Diff(config.DefaultSettings())
		settings = loaded.Settings
		settings.Apply(overrides)
	}
	settings.Validate()
	client.SetBaseURL(settings.APIURL)

	appState := state.NewStore(settings)
	if loaded.Found {
		appState.Restore(loaded.Conversations, loaded.CurrentID)
	}

	c := &Controller{
		store:        appState,
		exchange:     exchange.New(appState, client),
		monitor:      status.NewMonitor(client, 0),
		adapter:      adapter,
		client:       client,
		connectivity: status.StatusChecking,
	}

	appState.SetOnChange(c.onStateChange)
	c.monitor.SetOnChange(c.onConnectivityChange)
	return c
}

// Subscribe registers the single view consumer. Set before Start.
func (c *Controller) Subscribe(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriber = fn
}

// Start begins connectivity polling.
func (c *Controller) Start(ctx context.Context) {
	c.monitor.Start(ctx)
}

// Close stops polling, waits for in-flight sends, and writes a final
// snapshot so nothing committed since the last save is lost.
func (c *Controller) Close() {
	c.monitor.Stop()
	c.exchange.Wait()
	c.adapter.Save(c.store.Snapshot())
}

// View assembles the current read model on demand.
func (c *Controller) View() View {
	return c.buildView(c.store.Snapshot())
}

// =============================================================================
// INTENTS
// =============================================================================

// NewConversation creates and selects an empty conversation.
func (c *Controller) NewConversation() string {
	return c.store.Create()
}

// SelectConversation switches the selection.
func (c *Controller) SelectConversation(id string) {
	c.store.Select(id)
}

// DeleteConversation removes a conversation. Deleting the selected one
// clears the selection.
func (c *Controller) DeleteConversation(id string) {
	c.store.Delete(id)
}

// SendMessage runs the optimistic send protocol against the current
// conversation, creating one if needed. The returned error is one of
// the exchange sentinels when the input is rejected.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	return c.exchange.Send(ctx, text)
}

// UpdateSettings applies a partial settings change. An API URL change
// re-points the backend client immediately.
func (c *Controller) UpdateSettings(patch config.Patch) {
	c.store.UpdateSettings(patch)
	c.client.SetBaseURL(c.store.Settings().APIURL)
}

// ReloadSettings swaps in externally loaded settings, e.g. from the
// config file watcher.
func (c *Controller) ReloadSettings(settings config.Settings) {
	c.store.ReplaceSettings(settings)
	c.client.SetBaseURL(c.store.Settings().APIURL)
}

// SetInputDisabled toggles whether sends are accepted.
func (c *Controller) SetInputDisabled(disabled bool) {
	c.exchange.SetDisabled(disabled)
	c.publish(c.View())
}

// =============================================================================
// CHANGE PROPAGATION
// =============================================================================

func (c *Controller) onStateChange(snap state.Snapshot) {
	// Persistence failures must not take the session down; the state
	// stays live in memory and the next change retries the write.
	_ = c.adapter.Save(snap)
	c.publish(c.buildView(snap))
}

func (c *Controller) onConnectivityChange(s status.Status) {
	c.mu.Lock()
	c.connectivity = s
	c.mu.Unlock()
	c.publish(c.View())
}

func (c *Controller) buildView(snap state.Snapshot) View {
	c.mu.Lock()
	connectivity := c.connectivity
	c.mu.Unlock()

	return View{
		Conversations: snap.Sorted(),
		Current:       snap.Current(),
		Connectivity:  connectivity,
		Settings:      snap.Settings,
		InputDisabled: c.exchange.Disabled(),
	}
}

func (c *Controller) publish(v View) {
	c.mu.Lock()
	fn := c.subscriber
	c.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}
