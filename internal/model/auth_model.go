package model

import "time"

type User struct {
	UserID       int64      `json:"userid"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"` // never JSON-encode
	Role         string     `json:"role"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
