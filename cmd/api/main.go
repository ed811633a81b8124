package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/trad-forum/backend/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment variables")
	}

	srv := server.NewServer()

	logrus.WithField("addr", srv.Addr).Info("starting server")
	if err := srv.ListenAndServe(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
