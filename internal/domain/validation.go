package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether email matches a standard address shape.
// The server validates again; this only catches obvious typos early.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
