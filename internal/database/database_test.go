package database

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

func mustStartPostgresContainer(t *testing.T) {
	t.Helper()

	var (
		dbName = "forum"
		dbPwd  = "password"
		dbUser = "forum"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := dbContainer.Terminate(context.Background()); err != nil {
			t.Logf("could not teardown postgres container: %v", err)
		}
	})

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		t.Fatalf("could not get container host: %v", err)
	}
	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		t.Fatalf("could not get container port: %v", err)
	}

	database = dbName
	password = dbPwd
	username = dbUser
	host = dbHost
	port = dbPort.Port()
}

func TestDatabaseService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed database test in short mode")
	}

	mustStartPostgresContainer(t)

	srv := New()
	if srv == nil {
		t.Fatal("New returned nil")
	}

	t.Run("health", func(t *testing.T) {
		stats := srv.Health()
		if stats["status"] != "up" {
			t.Fatalf("expected status up, got %s (%s)", stats["status"], stats["error"])
		}
	})

	t.Run("migrations created the forum tables", func(t *testing.T) {
		db := srv.GetDB()
		for _, model := range []interface{}{
			&models.User{},
			&models.Trad{},
			&models.Post{},
			&models.Comment{},
			&models.TradLike{},
			&models.PostLike{},
			&models.CommentLike{},
		} {
			if !db.Migrator().HasTable(model) {
				t.Errorf("missing table for %T", model)
			}
		}
	})

	t.Run("seed", func(t *testing.T) {
		if err := Seed(srv.GetDB()); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
		var user models.User
		if err := srv.GetDB().Where("username = ?", MainUserName).First(&user).Error; err != nil {
			t.Fatalf("main user not present after seed: %v", err)
		}
	})

	t.Run("close", func(t *testing.T) {
		if err := srv.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	})
}
