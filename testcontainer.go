package datomic

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultDatomicImage is the container image used when none is given.
const DefaultDatomicImage = "akiel/datomic-free:0.9.5703"

// restServicePort is the REST service port inside the container.
const restServicePort = "3000/tcp"

// DatomicContainer wraps a Datomic Free container running the REST service.
// Intended for integration tests: start one, Connect, Terminate when done.
type DatomicContainer struct {
	container testcontainers.Container
	storage   string
}

// DatomicContainerOptions configures RunDatomicContainer.
type DatomicContainerOptions struct {
	// Image overrides DefaultDatomicImage.
	Image string
	// Storage is the storage alias the REST service exposes (default "dev").
	Storage string
	// StartupTimeout bounds how long to wait for the service to come up
	// (default 3 minutes, the transactor is slow to start).
	StartupTimeout time.Duration
}

// RunDatomicContainer starts a Datomic Free container and waits for the
// REST service to accept requests.
func RunDatomicContainer(ctx context.Context, opts DatomicContainerOptions) (*DatomicContainer, error) {
	image := opts.Image
	if image == "" {
		image = DefaultDatomicImage
	}
	storage := opts.Storage
	if storage == "" {
		storage = DefaultStorage
	}
	timeout := opts.StartupTimeout
	if timeout == 0 {
		timeout = 3 * time.Minute
	}

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{restServicePort},
		Env: map[string]string{
			"ALT_HOST": "0.0.0.0",
		},
		WaitingFor: wait.ForListeningPort(restServicePort).WithStartupTimeout(timeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, WithContext(fmt.Errorf("%w: starting datomic container: %v", ErrConnection, err), map[string]interface{}{
			"image": image,
		})
	}

	return &DatomicContainer{container: container, storage: storage}, nil
}

// Endpoint returns the base URL of the REST service, e.g. "http://localhost:32768".
func (c *DatomicContainer) Endpoint(ctx context.Context) (string, error) {
	host, err := c.container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := c.container.MappedPort(ctx, restServicePort)
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}
	return fmt.Sprintf("http://%s:%s", host, port.Port()), nil
}

// Connect builds a Client pointed at the container's REST service.
func (c *DatomicContainer) Connect(ctx context.Context) (*Client, error) {
	endpoint, err := c.Endpoint(ctx)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig(endpoint)
	cfg.Storage = c.storage
	return NewClient(cfg)
}

// Terminate stops and removes the container.
func (c *DatomicContainer) Terminate(ctx context.Context) error {
	return c.container.Terminate(ctx)
}
