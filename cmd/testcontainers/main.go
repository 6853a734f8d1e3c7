package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/joho/godotenv"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a throwaway MariaDB container for local development with the environment
variables from the .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	ctx := context.Background()

	var container testcontainers.Container
	go func() {
		var err error
		container, err = startMariaDB(ctx)
		if err != nil {
			log.Fatalf("Failed to start MariaDB container: %v\n", err)
		}
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating container...\n", sig)
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func startMariaDB(ctx context.Context) (testcontainers.Container, error) {
	dbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, err
	}

	database := envOr("DB_DATABASE", "olive")
	user := envOr("DB_USER", "olive")
	password := envOr("DB_PASSWORD", "olive")

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mariadb:11",
			ExposedPorts: []string{string(dbPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": password,
				"MARIADB_DATABASE":      database,
				"MARIADB_USER":          user,
				"MARIADB_PASSWORD":      password,
			},
			WaitingFor: wait.ForListeningPort(dbPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	mapped, err := container.MappedPort(ctx, dbPort)
	if err != nil {
		return nil, err
	}

	log.Printf("MariaDB up. Point the server at it with:\n")
	log.Printf("  DB_TYPE=mariadb DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s DB_PASSWORD=%s\n",
		host, mapped.Port(), database, user, password)
	log.Printf("Ctrl-C to terminate.\n")

	return container, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
