// Package envfile reads dotenv-style files without touching the process environment.
package envfile

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
)

// Parse reads a dotenv file and returns its key-value pairs.
// It handles KEY=VALUE, quoted values, comments and `export` prefixes.
func Parse(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return vars, nil
}

// Lookup returns the trimmed value of key. Blank values count as unset.
func Lookup(vars map[string]string, key string) (string, bool) {
	value := strings.TrimSpace(vars[key])
	if value == "" {
		return "", false
	}
	return value, true
}
