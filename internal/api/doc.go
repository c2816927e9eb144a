// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the OllamaStack backend.
//
// Two endpoints are consumed: POST /api/v1/chat for sends and
// GET /api/v1/health for connectivity probes. Errors are categorized as
// network failures (transport-level: unreachable, timeout) or service
// failures (reachable but non-success response); use IsNetworkError,
// IsServiceError, and IsTimeout to distinguish them.
package api
