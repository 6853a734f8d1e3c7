package database_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/plagiagia/OliveAIFarmer/internal/config"
	"github.com/plagiagia/OliveAIFarmer/internal/database"
	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestConnectMariaDB runs the full connect/migrate/seed path against a real
// MariaDB in a container. Opt in with RUN_CONTAINER_TESTS=1; skipped when
// Docker is not reachable.
func TestConnectMariaDB(t *testing.T) {
	if os.Getenv("RUN_CONTAINER_TESTS") == "" {
		t.Skip("set RUN_CONTAINER_TESTS=1 to run container tests")
	}

	ctx := context.Background()

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		t.Skipf("Docker client unavailable: %v", err)
	}
	if _, err := cli.Ping(ctx); err != nil {
		t.Skipf("Docker daemon unreachable: %v", err)
	}
	_ = cli.Close()

	dbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mariadb:11",
			ExposedPorts: []string{string(dbPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": "root",
				"MARIADB_DATABASE":      "olive_test",
				"MARIADB_USER":          "olive",
				"MARIADB_PASSWORD":      "olive",
			},
			WaitingFor: wait.ForListeningPort(dbPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	mapped, err := container.MappedPort(ctx, dbPort)
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}

	// Wait until the server accepts SQL, not just TCP
	dsn := fmt.Sprintf("olive:olive@tcp(%s:%s)/olive_test", host, mapped.Port())
	deadline := time.Now().Add(60 * time.Second)
	for {
		raw, err := sql.Open("mysql", dsn)
		if err == nil {
			err = raw.Ping()
			_ = raw.Close()
		}
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("MariaDB never became ready: %v", err)
		}
		time.Sleep(time.Second)
	}

	cfg := &config.Config{
		DBType:            "mariadb",
		DBHost:            host,
		DBPort:            mapped.Port(),
		DBDatabase:        "olive_test",
		DBUser:            "olive",
		DBPassword:        "olive",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if err := database.SeedVarieties(db); err != nil {
		t.Fatalf("SeedVarieties: %v", err)
	}

	var varieties int64
	if err := db.Model(&models.OliveVariety{}).Count(&varieties).Error; err != nil {
		t.Fatalf("count varieties: %v", err)
	}
	if varieties != 3 {
		t.Errorf("seeded varieties = %d, want 3", varieties)
	}

	// Round-trip one farm through the real driver
	user := models.User{AuthzID: "authz-container", Email: "farmer@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	farm := models.Farm{Name: "Ελαιώνας", Location: "Καλαμάτα", UserID: user.ID}
	if err := db.Create(&farm).Error; err != nil {
		t.Fatalf("create farm: %v", err)
	}

	var loaded models.Farm
	if err := db.First(&loaded, "id = ?", farm.ID).Error; err != nil {
		t.Fatalf("reload farm: %v", err)
	}
	if loaded.Name != "Ελαιώνας" {
		t.Errorf("round-trip farm name = %q", loaded.Name)
	}
}
