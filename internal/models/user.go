// Package models defines the wire-level data structures exchanged with the
// Slack Connect backend. Field names follow the backend's JSON contract.
package models

// User is the backend's record of an authenticated workspace user.
//
// TokenValid reflects the backend's Slack credential for this user, not the
// bearer token the client holds; the two expire independently.
type User struct {
	ID          string `json:"id"`
	SlackUserID string `json:"slack_user_id"`
	TeamID      string `json:"team_id"`
	TokenValid  bool   `json:"token_valid"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}
