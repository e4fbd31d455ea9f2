package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultDotEnvFile is the file LoadDotEnv reads when no path is given.
const DefaultDotEnvFile = ".env"

// LoadDotEnv copies KEY=value pairs from a dotenv file into the process
// environment. Variables that are already set keep their value, and a missing
// file is not an error so deployments can rely on the real environment alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultDotEnvFile}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
