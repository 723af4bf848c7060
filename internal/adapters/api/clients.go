package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alnitaka/zenon-cli/internal/domain"
)

type createClientRequest struct {
	Name string `json:"name"`
}

// ListClients fetches the caller's client records. The Authorization header
// is attached only when a current token is present; an anonymous call is
// the server's problem to reject, not this layer's.
func (g *Gateway) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := g.call(ctx, http.MethodGet, "/api/clients", nil, g.Token(), &clients); err != nil {
		return nil, err
	}

	return clients, nil
}

func (g *Gateway) CreateClient(ctx context.Context, name string) (domain.Client, error) {
	var client domain.Client
	if err := g.call(ctx, http.MethodPost, "/api/clients", createClientRequest{Name: name}, g.Token(), &client); err != nil {
		return domain.Client{}, err
	}

	return client, nil
}

// DeleteClient removes one client record. Pruning any locally rendered
// list is the caller's responsibility.
func (g *Gateway) DeleteClient(ctx context.Context, id int) error {
	return g.call(ctx, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), nil, g.Token(), nil)
}
