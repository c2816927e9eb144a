// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package status tracks backend connectivity.
//
// A Monitor probes the backend health endpoint once on start and then
// on a fixed interval, collapsing the result into one of three states:
// checking (no probe yet), online, or offline. Transitions are pushed
// through a single callback so the UI can update its connectivity
// badge without polling.
package status
