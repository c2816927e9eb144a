// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exchange implements the optimistic send protocol.
//
// A send commits two messages to the store before the network is
// touched: the user's message and a pending assistant placeholder.
// Exactly one backend call is started per accepted send, and when it
// returns the placeholder is resolved or failed in place by ID. If
// the conversation was deleted while the call was in flight the
// resolution silently disappears with it.
//
// At most one reply may be in flight per conversation; further sends
// to that conversation are rejected with ErrSendInFlight until the
// placeholder resolves.
package exchange
