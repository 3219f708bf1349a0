package models

// Channel is a Slack channel the user can pick as a destination.
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsPrivate  bool   `json:"is_private"`
	IsGeneral  bool   `json:"is_general"`
	IsArchived bool   `json:"is_archived"`
	IsMember   bool   `json:"is_member"`
}
