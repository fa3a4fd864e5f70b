package aws

import (
	"context"
	"sync"
)

type clientKey struct {
	region  string
	profile string
}

// ClientPool caches one Client per region and profile
type ClientPool struct {
	clients     map[clientKey]*Client
	mu          sync.RWMutex
	endpointURL string
	newClient   func(ctx context.Context, opts ClientOptions) (*Client, error)
}

// NewClientPool creates an empty pool. endpointURL, when set, is applied to every client.
func NewClientPool(endpointURL string) *ClientPool {
	return &ClientPool{
		clients:     make(map[clientKey]*Client),
		endpointURL: endpointURL,
		newClient:   NewClient,
	}
}

// GetClient returns the cached client for region and profile, creating it on first use
func (p *ClientPool) GetClient(ctx context.Context, region, profile string) (*Client, error) {
	key := clientKey{region: region, profile: profile}

	p.mu.RLock()
	if client, exists := p.clients[key]; exists {
		p.mu.RUnlock()
		return client, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[key]; exists {
		return client, nil
	}

	client, err := p.newClient(ctx, ClientOptions{Region: region, Profile: profile, EndpointURL: p.endpointURL})
	if err != nil {
		return nil, err
	}
	p.clients[key] = client
	return client, nil
}
