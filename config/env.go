package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv loads the .env file when present. A missing file is fine in
// production, where the variables come from the environment itself.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using process environment")
	}
}
