package containers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultImage = "postgres:16.3-alpine"
	dbName       = "fantasy_basketball"
	dbUser       = "fbuser"
	dbPassword   = "secret"

	// Overrides the postgres image, e.g. to match the production version.
	imageEnv = "TEST_POSTGRES_IMAGE"
)

// DBContainer is a throw away postgres instance with schema/schema.sql
// already applied.
type DBContainer struct {
	container *postgres.PostgresContainer
	connStr   string
}

func NewDBContainer(ctx context.Context) (*DBContainer, error) {
	schema, err := schemaPath()
	if err != nil {
		return nil, err
	}

	image := os.Getenv(imageEnv)
	if image == "" {
		image = defaultImage
	}

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(schema),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("error starting %s container: %w", image, err)
	}

	// sslmode=disable because the container is not configured to use TLS
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("error getting connection string: %w", err)
	}

	return &DBContainer{
		container: container,
		connStr:   connStr,
	}, nil
}

func (c *DBContainer) Shutdown() error {
	if err := c.container.Terminate(context.Background()); err != nil {
		return fmt.Errorf("error terminating container: %w", err)
	}
	return nil
}

func (c *DBContainer) ConnectionString() string {
	return c.connStr
}

// schemaPath finds schema.sql relative to this file so that tests in any
// package can start a container.
func schemaPath() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("unable to find the path of the schema file")
	}
	path := filepath.Join(filepath.Dir(file), "..", "schema", "schema.sql")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("error finding schema: %w", err)
	}
	return path, nil
}
