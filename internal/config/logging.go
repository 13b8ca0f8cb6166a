package config

import (
	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the global logrus logger.
func SetupLogging(c LogConfig) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		log.Warnf("unknown log level %q, falling back to info", c.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
