// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat screen for the stackchat TUI.
//
// The screen is a thin Bubble Tea shell over the app controller: key
// presses become controller intents, and controller publications arrive
// back as ViewUpdatedMsg carrying a complete read model. The model keeps
// no conversation state of its own, so a dropped frame can never show
// state the store does not hold.
package chat
