package config

import (
	"github.com/sirupsen/logrus"
)

// Logger is the shared application logger. Everything else is injected;
// logging stays package-level so any layer can emit without plumbing.
var Logger = logrus.New()

func InitLogger() {
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Logger.SetLevel(logrus.InfoLevel)
}
