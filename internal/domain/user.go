package domain

import "time"

// User is the server's account record. Field tags follow the wire contract
// of the zenon API, including its mixed-language field names.
type User struct {
	ID           int       `json:"id"`
	CreationDate time.Time `json:"dateCreation"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	LastName     string    `json:"lastname"`
	FirstName    string    `json:"firstname"`
	Active       bool      `json:"active"`
	Roles        []string  `json:"role"`
}

// Client is a customer record owned by the authenticated user. The server
// serializes the name as "nom".
type Client struct {
	ID    int    `json:"id"`
	Name  string `json:"nom"`
	Email string `json:"email"`
	Owner User   `json:"owner"`
}
