// Helpers for running database-backed tests with testcontainers.
// Each container gets a uniquely named database so parallel test runs
// never collide.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/recipekit/recipedb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DBContainer couples a running database container with the configuration
// needed to reach it from the host.
type DBContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Terminate stops and removes the container
func (dc *DBContainer) Terminate(t *testing.T) {
	t.Helper()
	if dc.Container != nil {
		if err := dc.Container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}
}

// StartMariaDB starts a MariaDB container and waits until the application
// user can actually connect, not just until the port is listening.
func StartMariaDB(t *testing.T) *DBContainer {
	t.Helper()
	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	dbName := uniqueDBName()

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      dbName,
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	waitForMySQL(t, host, port, dbName)

	return &DBContainer{
		Container: container,
		Config: &config.Config{
			DBType:            "mysql",
			DBHost:            host,
			DBPort:            port.Port(),
			DBDatabase:        dbName,
			DBUser:            "testuser",
			DBPassword:        "testpass",
			DBConnectionLimit: 5,
		},
	}
}

// StartPostgres starts a PostgreSQL container
func StartPostgres(t *testing.T) *DBContainer {
	t.Helper()
	ctx := context.Background()

	image := os.Getenv("POSTGRES_IMAGE")
	if image == "" {
		image = "postgres:17-alpine"
	}

	dbName := uniqueDBName()

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_DB":       dbName,
			},
			// Postgres restarts once during init, wait for the second ready line
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	return &DBContainer{
		Container: container,
		Config: &config.Config{
			DBType:            "postgres",
			DBHost:            host,
			DBPort:            port.Port(),
			DBDatabase:        dbName,
			DBUser:            "testuser",
			DBPassword:        "testpass",
			DBConnectionLimit: 5,
		},
	}
}

// waitForMySQL pings until the application user can connect
func waitForMySQL(t *testing.T, host string, port nat.Port, dbName string) {
	t.Helper()
	dsn := fmt.Sprintf("testuser:testpass@tcp(%s:%s)/%s", host, port.Port(), dbName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open MySQL connection: %v", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return
		}
		time.Sleep(1 * time.Second)
	}
	t.Fatalf("MariaDB not ready after 30 seconds: %v", err)
}

func uniqueDBName() string {
	return "recipedb_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
