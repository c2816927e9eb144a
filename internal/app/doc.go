// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the application together.
//
// The Controller owns the state store, the send protocol, the
// connectivity monitor, and persistence, and exposes them to the UI as
// a small set of intents (new, select, delete, send, update settings)
// plus a single subscription that delivers a fresh View after every
// committed change. Each committed change is also written to storage
// before the subscriber sees it, so killing the process never loses
// acknowledged state.
package app
