// Command migrate creates or updates the database schema and exits.
package main

import (
	log "github.com/sirupsen/logrus"

	"reseller-backend/internal/config"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.SetupLogging(cfg.Log)

	config.InitDB(cfg.Database)
	log.Info("migration finished")
}
