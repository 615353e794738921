package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MinIO root credentials of the test container.
const (
	MinioUser     = "root"
	MinioPassword = "rootpass"
)

var minioContainer = newSharedContainer(testcontainers.ContainerRequest{
	Image: "docker.io/minio/minio:latest",
	Env: map[string]string{
		"MINIO_ROOT_USER":     MinioUser,
		"MINIO_ROOT_PASSWORD": MinioPassword,
	},
	Cmd:        []string{"server", "/data"},
	WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(containerStartupTimeout),
}, "9000")

// SetupTestMinio returns the http endpoint of the shared MinIO container.
func SetupTestMinio(t *testing.T) string {
	t.Helper()

	addr, err := minioContainer.Addr()
	require.NoError(t, err, "minio container")

	return "http://" + addr
}
