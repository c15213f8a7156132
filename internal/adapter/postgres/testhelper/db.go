package testhelper

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/correspondence-backend/migrations"
)

const (
	sharedDB   = "testdb"
	templateDB = "correspondence_template"
	adminDB    = "postgres"
)

type server struct {
	base *url.URL // DSN with the database path left empty
}

func (s server) dsn(database string) string {
	u := *s.base
	u.Path = "/" + database
	return u.String()
}

var (
	once    sync.Once
	shared  server
	initErr error
)

func start(t *testing.T) server {
	t.Helper()

	once.Do(func() {
		shared, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", initErr)
	}
	return shared
}

// SetupTestDB returns a pool on the database shared by every test in the
// process. The container starts once per process and is migrated once; the
// pool is closed via t.Cleanup. Tests on the shared database must not
// depend on rows they did not create.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	return connect(t, start(t).dsn(sharedDB))
}

// SetupIsolatedDB creates a fresh, migrated database for the calling test
// and drops it on cleanup. Use it when the code under test reads every row
// of a table, as the escalation scan does.
func SetupIsolatedDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	srv := start(t)
	name := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgx.Connect(ctx, srv.dsn(adminDB))
	if err != nil {
		t.Fatalf("testhelper: connect admin database: %v", err)
	}
	defer admin.Close(ctx)

	if _, err := admin.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %s TEMPLATE %s`, name, templateDB)); err != nil {
		t.Fatalf("testhelper: create database %s: %v", name, err)
	}

	pool := connect(t, srv.dsn(name))
	t.Cleanup(func() {
		pool.Close()
		dropCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		conn, err := pgx.Connect(dropCtx, srv.dsn(adminDB))
		if err != nil {
			t.Logf("testhelper: drop %s: %v", name, err)
			return
		}
		defer conn.Close(dropCtx)
		if _, err := conn.Exec(dropCtx, fmt.Sprintf(`DROP DATABASE IF EXISTS %s WITH (FORCE)`, name)); err != nil {
			t.Logf("testhelper: drop %s: %v", name, err)
		}
	})
	return pool
}

func connect(t *testing.T, dsn string) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("testhelper: failed to create pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// startContainerAndMigrate starts Postgres, migrates the shared database and
// clones it into a template that is never connected to, so isolated
// databases can be created from it at any time.
func startContainerAndMigrate() (server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       sharedDB,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return server{}, fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return server{}, fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return server{}, fmt.Errorf("get mapped port: %w", err)
	}

	srv := server{base: &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword("testuser", "testpass"),
		Host:     host + ":" + port.Port(),
		RawQuery: "sslmode=disable",
	}}

	if err := migrate(ctx, srv.dsn(sharedDB)); err != nil {
		return server{}, err
	}

	admin, err := pgx.Connect(ctx, srv.dsn(adminDB))
	if err != nil {
		return server{}, fmt.Errorf("connect admin database: %w", err)
	}
	defer admin.Close(ctx)
	// The goose connection may still be closing server-side; CREATE DATABASE
	// fails while the source has other sessions.
	stmt := fmt.Sprintf(`CREATE DATABASE %s TEMPLATE %s`, templateDB, sharedDB)
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, stmt)
		if err == nil {
			break
		}
		if attempt == 10 {
			return server{}, fmt.Errorf("create template database: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}

	return srv, nil
}

// migrate applies the embedded goose migrations over database/sql.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
