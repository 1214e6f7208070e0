package config

import (
	"sync"
)

// ClientConfig defines the generic structure for managing clients with thread-safety
type ClientConfig[T any] struct {
	sync.Mutex
	Client T
}

// SetClient sets the client in a thread-safe way
func (c *ClientConfig[T]) SetClient(client T) {
	c.Lock()
	defer c.Unlock()

	c.Client = client
}

// GetClient retrieves the client in a thread-safe way
func (c *ClientConfig[T]) GetClient() T {
	c.Lock()
	defer c.Unlock()

	return c.Client
}

// InitializeClient creates the client once and stores it on the config.
func InitializeClient[T any](
	config *ClientConfig[T],
	createClient func() (T, error),
) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	config.SetClient(client)
	return nil
}
