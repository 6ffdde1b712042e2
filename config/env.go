package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv pulls a local .env file into the environment. Missing files are
// fine; deployed instances get their variables from the platform.
func LoadEnv() {
	err := godotenv.Load()

	if err != nil {
		Logger.Warn("No .env file loaded, using process environment:", err)
	}
}
