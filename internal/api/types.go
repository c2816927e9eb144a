// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	// Message is the user's input text.
	Message string `json:"message"`
	// ConversationID lets the backend keep per-conversation memory.
	ConversationID string `json:"conversation_id,omitempty"`
	// Model optionally overrides the backend's default model.
	Model string `json:"model,omitempty"`
	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature,omitempty"`
	// MaxTokens bounds the reply length.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the backend's reply to a chat request.
type ChatResponse struct {
	Message        string         `json:"message"`
	ConversationID string         `json:"conversation_id"`
	ModelUsed      string         `json:"model_used"`
	Timestamp      string         `json:"timestamp"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status       string  `json:"status"`
	Version      string  `json:"version"`
	OllamaStatus string  `json:"ollama_status"`
	Uptime       float64 `json:"uptime"`
}

// errorBody is the FastAPI error envelope on non-success responses.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (e errorBody) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error
}
