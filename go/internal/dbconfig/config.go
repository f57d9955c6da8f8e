// Package dbconfig assembles the Postgres DSN from DB_* variables when no
// DATABASE_URL is given.
package dbconfig

import (
	"net"
	"net/url"
	"os"
	"strconv"
)

const defaultPort = 5432

// Config holds Postgres connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// NewConfigFromEnv reads DB_* environment variables (with defaults).
func NewConfigFromEnv() Config {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads DB_* settings through lookup. Empty values count as unset.
func FromLookup(lookup func(string) (string, bool)) Config {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	port, err := strconv.Atoi(get("DB_PORT", strconv.Itoa(defaultPort)))
	if err != nil || port <= 0 {
		port = defaultPort
	}

	return Config{
		Host:     get("DB_HOST", "localhost"),
		Port:     port,
		User:     get("DB_USER", "postgres"),
		Password: get("DB_PASSWORD", "postgres"),
		Database: get("DB_NAME", "opengym"),
		SSLMode:  get("DB_SSLMODE", "disable"),
	}
}

// DSN returns the Postgres connection URL with credentials escaped.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// ResolveDSN prefers an explicit DATABASE_URL and falls back to the DB_* variables.
func ResolveDSN(databaseURL string) string {
	if databaseURL != "" {
		return databaseURL
	}
	return NewConfigFromEnv().DSN()
}
