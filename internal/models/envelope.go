package models

import "encoding/json"

// Envelope is the uniform response wrapper every backend endpoint returns.
// Data is decoded lazily by the caller once success is established.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// AuthURL is the payload of GET /auth/slack.
type AuthURL struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// TokenStatus is the payload of POST /auth/refresh.
type TokenStatus struct {
	TokenValid bool `json:"token_valid"`
}
