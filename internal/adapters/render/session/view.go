package session

import (
	"fmt"
	"time"

	"github.com/alnitaka/zenon-cli/internal/adapters/token"
	"github.com/alnitaka/zenon-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Status renders the published session state for the terminal. Claims are
// optional; they are shown when the bearer token could be decoded.
func Status(sess domain.Session, claims *token.Claims, now time.Time) string {
	s := newStyles()

	lines := []string{s.title.Render("Session")}
	if !sess.Authenticated {
		lines = append(lines, s.empty.Render("Logged out."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, kv(s, "state", "authenticated"))
	if sess.Email != "" {
		lines = append(lines, kv(s, "email", sess.Email))
	}
	lines = append(lines, kv(s, "token", redactToken(sess.Token)))
	if !sess.AuthenticatedAt.IsZero() {
		lines = append(lines, kv(s, "since", sess.AuthenticatedAt.Format(time.RFC3339)))
	}

	if claims != nil {
		if claims.Subject != "" {
			lines = append(lines, kv(s, "subject", claims.Subject))
		}
		if !claims.ExpiresAt.IsZero() {
			line := kv(s, "expires", claims.ExpiresAt.Format("15:04 on 02 Jan 2006"))
			if claims.Expired(now) {
				line += " " + s.warning.Render("[expired]")
			}
			lines = append(lines, line)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Clients renders the client list.
func Clients(clients []domain.Client) string {
	s := newStyles()

	lines := []string{
		s.title.Render("Clients"),
		s.header.Render(fmt.Sprintf("clients: %d", len(clients))),
	}

	if len(clients) == 0 {
		lines = append(lines, s.empty.Render("No clients yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, client := range clients {
		lines = append(lines, s.section.Render(renderClient(client, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderClient(client domain.Client, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.entry.Render(client.Name),
			" ",
			s.id.Render(fmt.Sprintf("(#%d)", client.ID)),
		),
	}

	if client.Email != "" {
		parts = append(parts, kv(s, "email", client.Email))
	}
	if client.Owner.Email != "" {
		parts = append(parts, kv(s, "owner", client.Owner.Email))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func kv(s styles, key, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render(key+":"),
		" ",
		s.value.Render(value),
	)
}

func redactToken(tok string) string {
	if len(tok) <= 8 {
		return "present"
	}

	return tok[:8] + "…"
}
