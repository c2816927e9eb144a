// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state owns the application state container for stackchat.
//
// Store is the single root that owns conversations, the current selection,
// and settings. All mutations funnel through its methods, each of which
// applies a complete change under one mutex and hands an immutable deep-copy
// Snapshot to the registered change listener. Delivery is serialized in
// commit order, so the listener never sees a newer snapshot overtaken by an
// older one; in exchange the listener must not mutate the store. There are
// no ambient globals; the controller holds the only Store.
//
// The ResolvePending/FailPending pair backs the optimistic send protocol:
// each locates a placeholder by conversation and message id and treats a
// lookup miss (the user deleted the conversation mid-flight) as a silent
// no-op.
package state
