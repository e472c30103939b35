// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

// DSN builds the Postgres connection string for the primary database.
// Empty settings are omitted so libpq falls back to its own defaults.
func (d *DatabaseConfig) DSN() string {
	params := []struct {
		key   string
		value string
	}{
		{"host", d.Host},
		{"port", d.Port},
		{"user", d.User},
		{"password", d.Password},
		{"dbname", d.Database},
		{"sslmode", d.SSLMode},
		{"application_name", "gradpath"},
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.value != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", p.key, p.value))
		}
	}
	return strings.Join(parts, " ")
}
