//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoImage is the server version the repositories are tested against.
const MongoImage = "mongo:7.0"

// MongoDBContainer is a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// StartMongoDB starts a dedicated MongoDB container. Packages with several
// integration tests should share one through SetupTestMainWithMongoDB.
func StartMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	container, err := mongodb.Run(ctx, MongoImage)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", MongoImage, err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}
	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate container: %w", err)
	}
	return nil
}

var shared struct {
	once      sync.Once
	mu        sync.RWMutex
	container *MongoDBContainer
	err       error
}

// SetupTestMainWithMongoDB starts the package's shared container, runs the
// tests and terminates it. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	shared.once.Do(func() {
		shared.mu.Lock()
		defer shared.mu.Unlock()
		shared.container, shared.err = StartMongoDB(ctx)
	})
	if shared.err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "mongodb container: %v\n", shared.err)
		return 1
	}

	code := m.Run()

	shared.mu.Lock()
	defer shared.mu.Unlock()
	if err := shared.container.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// SharedMongoURI returns the URI of the container started by
// SetupTestMainWithMongoDB.
func SharedMongoURI() string {
	shared.mu.RLock()
	defer shared.mu.RUnlock()
	if shared.container == nil {
		panic("testutil: shared MongoDB container not started; call SetupTestMainWithMongoDB from TestMain")
	}
	return shared.container.URI
}
