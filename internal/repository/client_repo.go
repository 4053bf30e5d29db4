package repository

import (
	"context"
	"fmt"

	"github.com/drew/praxis/internal/api"
	"github.com/drew/praxis/internal/domain"
)

// ClientRepo is a REST implementation of ClientRepository
type ClientRepo struct {
	transport api.Transport
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(transport api.Transport) *ClientRepo {
	return &ClientRepo{transport: transport}
}

// List fetches all clients for the client chooser
func (r *ClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	var resp listResponse[*domain.Client]
	if err := r.transport.Get(ctx, "/api/clients/", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return resp.Items, nil
}
