package ports

import (
	"context"

	"github.com/alnitaka/zenon-cli/internal/domain"
)

// AuthGateway performs the authentication calls and owns the in-memory
// bearer token stamped onto authorized requests.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (domain.Credentials, error)
	Register(ctx context.Context, email, password, firstName, lastName string) (domain.Credentials, error)
	FetchProfile(ctx context.Context, token string) (domain.User, error)
	SetToken(token string)
	ClearToken()
}

// ClientDirectory is the authenticated CRUD surface for the clients
// resource.
type ClientDirectory interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, name string) (domain.Client, error)
	DeleteClient(ctx context.Context, id int) error
}
