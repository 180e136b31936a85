// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup applies the level and formatter. Unknown levels fall back to info.
// JSON output is used in production so log shippers can parse fields.
func Setup(level string, production bool) {
	SetupWriter(os.Stdout, level, production)
}

func SetupWriter(w io.Writer, level string, production bool) {
	log.SetOutput(w)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if production {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
