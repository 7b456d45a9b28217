package models

import "time"

// User represents a user account in the system.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Avatar          string    `json:"avatar,omitempty"`
	Cover           string    `json:"cover,omitempty"`
	Address         string    `json:"address,omitempty"`
	Position        string    `json:"position,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Specializations []string  `json:"specializations,omitempty"`
	PasswordHash    string    `json:"-"` // Never expose this to the client
	CreatedAt       time.Time `json:"createdAt"`
}
