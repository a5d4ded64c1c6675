// Helpers for running tests against a real database with testcontainers.
// Used by the integration tests and by the standalone cmd/testcontainers
// runner. Expects connection settings in environment variables.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainers holds the containers backing an integration run.
type TestContainers struct {
	Network     *testcontainers.DockerNetwork
	DBContainer testcontainers.Container

	// Host-reachable coordinates of the database, filled in after start.
	DBHost string
	DBPort string
}

// Terminate tears everything down in reverse start order.
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database container: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateAllTestContainers starts a MariaDB container, creates the application
// database and user, and returns the host-mapped coordinates.
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw

	dbImage := getenvDefault("DB_IMAGE", "mariadb:11")
	dbPortNumber := getenvDefault("DB_PORT", "3306")
	rootPassword := getenvDefault("DB_ROOT_PASSWORD", "root")

	tcpDbPort, err := nat.NewPort("tcp", dbPortNumber)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage,
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": rootPassword,
				"MYSQL_DATABASE":      getenvDefault("DB_DATABASE", "beggy"),
				"MYSQL_USER":          getenvDefault("DB_USER", "beggy"),
				"MYSQL_PASSWORD":      getenvDefault("DB_PASSWORD", "beggy"),
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{nw.Name},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start database container")
	}
	testContainers.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	testContainers.DBHost = dbHost
	testContainers.DBPort = dbPort.Port()

	if err := waitForDatabase(dbHost, dbPort.Port(), rootPassword); err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Database not ready")
	}

	logMessage(t, "DB_URL=%s:%s", dbHost, dbPort.Port())
	logMessage(t, "Test database started successfully")
	return testContainers, nil
}

// waitForDatabase pings until the server accepts connections and the grants
// have settled.
func waitForDatabase(host, port, rootPassword string) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", rootPassword, host, port))
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("database not ready after 30 seconds: %w", err)
	}

	user := getenvDefault("DB_USER", "beggy")
	database := getenvDefault("DB_DATABASE", "beggy")
	if _, err := db.Exec(fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'", database, user)); err != nil {
		return fmt.Errorf("failed to grant privileges: %w", err)
	}
	if _, err := db.Exec("FLUSH PRIVILEGES"); err != nil {
		return fmt.Errorf("failed to flush privileges: %w", err)
	}

	return nil
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func logMessage(t *testing.T, format string, args ...interface{}) {
	if t != nil {
		t.Logf(format, args...)
		return
	}
	fmt.Printf(format+"\n", args...)
}

func exitWithError(t *testing.T, err error, message string) {
	if t != nil {
		t.Fatalf("%s: %v", message, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
	os.Exit(1)
}
