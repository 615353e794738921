// Package testutil starts the backing services used by integration tests.
// Each service runs in one container shared by every test in the binary.
package testutil

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
)

const (
	containerStartupTimeout   = 90 * time.Second
	containerTerminateTimeout = 10 * time.Second
	containerMemoryLimit      = 256 * 1024 * 1024 // 256MB
)

// sharedContainer starts its container on first use and remembers the
// result, failures included.
type sharedContainer struct {
	once    sync.Once
	request testcontainers.ContainerRequest
	port    nat.Port

	container testcontainers.Container
	addr      string
	err       error
}

var registry struct {
	mu         sync.Mutex
	containers []*sharedContainer
}

func newSharedContainer(req testcontainers.ContainerRequest, port string) *sharedContainer {
	if req.HostConfigModifier == nil {
		req.HostConfigModifier = func(hc *container.HostConfig) {
			hc.Memory = containerMemoryLimit
			hc.MemorySwap = containerMemoryLimit
		}
	}
	exposed := nat.Port(port + "/tcp")
	req.ExposedPorts = []string{string(exposed)}

	sc := &sharedContainer{request: req, port: exposed}
	registry.mu.Lock()
	registry.containers = append(registry.containers, sc)
	registry.mu.Unlock()
	return sc
}

// Addr returns host:port of the mapped service port.
func (sc *sharedContainer) Addr() (string, error) {
	sc.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), containerStartupTimeout)
		defer cancel()
		sc.container, sc.addr, sc.err = start(ctx, sc.request, sc.port)
	})
	return sc.addr, sc.err
}

func start(ctx context.Context, req testcontainers.ContainerRequest, port nat.Port) (testcontainers.Container, string, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		Reuse:            req.Name != "",
	})
	if err != nil {
		return nil, "", fmt.Errorf("start %s: %w", req.Image, err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		return c, "", fmt.Errorf("%s host: %w", req.Image, err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return c, "", fmt.Errorf("%s port: %w", req.Image, err)
	}

	return c, net.JoinHostPort(host, mapped.Port()), nil
}

// CleanupContainers terminates every container started so far. Call it
// from TestMain after m.Run.
func CleanupContainers() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for _, sc := range registry.containers {
		if sc.container == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), containerTerminateTimeout)
		_ = sc.container.Terminate(ctx)
		cancel()
	}
}
