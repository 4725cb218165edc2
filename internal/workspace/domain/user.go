package domain

import "time"

// User is a directory record. Identity (credentials, sessions, federation)
// is owned by the external identity provider; this is the local mirror the
// control plane resolves ids and emails against.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
