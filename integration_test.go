//go:build integration

package raptorboost_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/meigma/raptorboost/api/raptorboostpb"
)

// testTimeout is the default timeout for integration test operations.
const testTimeout = 2 * time.Minute

// testContext returns a context with timeout for test operations.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)
	return ctx
}

// setupDaemon builds the raptorboostd image from this repository's
// Dockerfile and starts it, exposing its gRPC port.
func setupDaemon(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		FromDockerfile: testcontainers.FromDockerfile{
			Context:    ".",
			Dockerfile: "Dockerfile",
		},
		ExposedPorts: []string{"7272/tcp"},
		WaitingFor:   wait.ForListeningPort("7272/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "7272")
	require.NoError(t, err)

	return host + ":" + port.Port()
}

func TestEndToEndUploadAndAssignNames(t *testing.T) {
	ctx := testContext(t)
	addr := setupDaemon(ctx, t)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := raptorboostpb.NewRaptorBoostAPIClient(conn)

	content := []byte("integration test payload")
	sum := sha256.Sum256(content)
	digest := hex.EncodeToString(sum[:])

	upload, err := client.UploadFiles(ctx, &raptorboostpb.UploadFilesRequest{Digests: []string{digest}})
	require.NoError(t, err)
	require.Equal(t, raptorboostpb.FileState_MISSING, upload.GetFileStates()[0].GetState())

	stream, err := client.SendFileData(ctx)
	require.NoError(t, err)
	require.NoError(t, stream.Send(&raptorboostpb.FileChunk{
		Digest: digest, Data: content, First: true, Last: true,
	}))
	resp, err := stream.CloseAndRecv()
	require.NoError(t, err)
	require.Equal(t, raptorboostpb.FileStatus_OK, resp.GetStatuses()[0].GetStatus())

	names, err := client.AssignNames(ctx, &raptorboostpb.AssignNamesRequest{
		Mappings: []*raptorboostpb.NameMapping{{Digest: digest, Name: "payload.txt"}},
	})
	require.NoError(t, err)
	require.True(t, names.GetStatuses()[0].GetOk())

	upload, err = client.UploadFiles(ctx, &raptorboostpb.UploadFilesRequest{Digests: []string{digest}})
	require.NoError(t, err)
	require.Equal(t, raptorboostpb.FileState_COMPLETE, upload.GetFileStates()[0].GetState())
}

func TestResumeInterruptedTransfer(t *testing.T) {
	ctx := testContext(t)
	addr := setupDaemon(ctx, t)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := raptorboostpb.NewRaptorBoostAPIClient(conn)

	content := []byte("a payload large enough to be split across two streams")
	sum := sha256.Sum256(content)
	digest := hex.EncodeToString(sum[:])

	first, err := client.SendFileData(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Send(&raptorboostpb.FileChunk{
		Digest: digest, Data: content[:10], First: true, Last: false,
	}))
	_, err = first.CloseAndRecv()
	require.NoError(t, err) // stream ends without Last: no promotion, partial persists

	check, err := client.UploadFiles(ctx, &raptorboostpb.UploadFilesRequest{Digests: []string{digest}})
	require.NoError(t, err)
	require.Equal(t, raptorboostpb.FileState_PARTIAL, check.GetFileStates()[0].GetState())
	require.EqualValues(t, 10, check.GetFileStates()[0].GetOffset())

	second, err := client.SendFileData(ctx)
	require.NoError(t, err)
	require.NoError(t, second.Send(&raptorboostpb.FileChunk{
		Digest: digest, Data: content[10:], First: true, Last: true,
	}))
	resp, err := second.CloseAndRecv()
	require.NoError(t, err)
	require.Equal(t, raptorboostpb.FileStatus_OK, resp.GetStatuses()[0].GetStatus())
}
