package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/trad-forum/backend/internal/database"
	"github.com/emilythestrangee/trad-forum/backend/internal/handlers"
	"github.com/emilythestrangee/trad-forum/backend/internal/metrics"
)

type Server struct {
	port int

	db      database.Service
	handler *handlers.Handler
	metrics *metrics.Metrics
}

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db := database.New()
	if err := database.Seed(db.GetDB()); err != nil {
		logrus.WithError(err).Fatal("database seeding failed")
	}

	m := metrics.InitMetrics()

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "."
	}

	newServer := &Server{
		port:    port,
		db:      db,
		handler: handlers.NewHandler(db.GetDB(), uploadDir, m),
		metrics: m,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newServer.port),
		Handler:      newServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
