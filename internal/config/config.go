package config

import (
	"path/filepath"
	"sync"

	"fjacquet/spend-rollup/internal/fileutils"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. Variables already set are kept. It returns
// the file that was loaded, or "" when none was.
func LoadEnv() (loaded string, err error) {
	once.Do(func() {
		for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
			if !fileutils.FileExists(envFile) {
				continue
			}
			if err = godotenv.Load(envFile); err == nil {
				loaded = envFile
			}
			return
		}
	})
	return loaded, err
}
