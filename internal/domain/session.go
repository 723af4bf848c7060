package domain

import "time"

// Session is the observable client-side authentication state. A non-empty
// Token implies Authenticated; Email is only known after a fresh login or
// register, never after restoring a persisted token.
type Session struct {
	Authenticated   bool
	Token           string
	Email           string
	AuthenticatedAt time.Time
}

// Credentials is the payload returned by the login and register endpoints.
type Credentials struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}
