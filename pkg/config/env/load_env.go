package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	// PathVar overrides the location of the .env file.
	PathVar        = "ENV_PATH"
	DatabaseURLVar = "RERANK_BENCH_DATABASE_URL"
	DefaultPath    = ".env"
)

// LoadDotEnv loads variables from the .env file named by ENV_PATH, falling
// back to defaultPath. Variables already set in the process win. A missing
// default file is not an error; a missing ENV_PATH file is.
func LoadDotEnv(defaultPath string) error {
	envPath, explicit := os.LookupEnv(PathVar)
	if !explicit || envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
		explicit = false
	}

	err := godotenv.Load(envPath)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Skipping .env ...", "path", envPath)
			return nil
		}
		slog.Error("Failed to load environment variables", "path", envPath, "error", err)
		return err
	}

	return nil
}

func DatabaseURL() string {
	return os.Getenv(DatabaseURLVar)
}
