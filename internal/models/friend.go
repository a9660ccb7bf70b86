package models

import "time"

// Friend is one entry in the user's friends list.
type Friend struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURI string    `json:"avatar_uri,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the session user's own profile.
type Profile struct {
	Nickname  string    `json:"nickname"`
	AvatarURI string    `json:"avatar_uri,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
