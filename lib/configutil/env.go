package configutil

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads the given dotenv files (defaults to `.env`) into the process
// environment, variables that are already set are never overwritten. Missing
// files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		slog.Info("loaded environment file", "file", f)
	}
	return nil
}

// EnvString overrides *target with the value of key if it is set and non-empty.
func EnvString(target *string, key string) {
	value, ok := os.LookupEnv(key)
	if ok && value != "" {
		*target = value
	}
}

// EnvInt overrides *target with the value of key if it is set and parses.
func EnvInt(target *int, key string) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("ignoring non-integer environment variable", "key", key, "value", value)
		return
	}
	*target = parsed
}

// EnvList overrides *target with the comma separated value of key.
func EnvList(target *[]string, key string) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	*target = out
}
