// Package testutil starts the backing stores that repository tests run
// against.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/nexus/pkg/database"
)

const (
	mongoImage = "mongo:7"
	mongoPort  = "27017/tcp"

	// EnvMongoURI points tests at an already running MongoDB.
	EnvMongoURI = "NEXUS_TEST_MONGO_URI"
	// EnvDockerTests opts in to starting a MongoDB container.
	EnvDockerTests = "NEXUS_DOCKER_TESTS"
)

// MongoClient returns a connected client for tests, or skips t when no
// MongoDB is reachable. Set NEXUS_TEST_MONGO_URI to reuse a running server,
// or NEXUS_DOCKER_TESTS=1 to start a disposable container.
func MongoClient(t *testing.T) *mongo.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	uri := os.Getenv(EnvMongoURI)
	if uri == "" {
		if os.Getenv(EnvDockerTests) == "" {
			t.Skipf("set %s or %s=1 to run MongoDB-backed tests", EnvMongoURI, EnvDockerTests)
		}

		var err error
		uri, err = startMongoContainer(ctx, t)
		if err != nil {
			t.Skipf("mongo container unavailable: %v", err)
		}
	}

	client, err := database.ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("mongo unreachable at %s: %v", uri, err)
	}
	t.Cleanup(func() { _ = database.DisconnectMongo(client) })

	return client
}

// UniqueDatabase returns a database name private to t, dropped on cleanup.
func UniqueDatabase(t *testing.T, client *mongo.Client) string {
	t.Helper()

	name := fmt.Sprintf("nexus_test_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Database(name).Drop(ctx)
	})
	return name
}

func startMongoContainer(ctx context.Context, t *testing.T) (uri string, err error) {
	// testcontainers panics when no Docker host can be found at all.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker: %v", r)
		}
	}()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        mongoImage,
			ExposedPorts: []string{mongoPort},
			WaitingFor: wait.ForAll(
				wait.ForLog("Waiting for connections"),
				wait.ForListeningPort(mongoPort),
			),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, mongoPort)
	if err != nil {
		return "", fmt.Errorf("failed to get container port: %w", err)
	}

	return fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port()), nil
}
