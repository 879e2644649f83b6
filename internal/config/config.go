package config // loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field maps to an
// environment variable; required ones go through must() and abort
// startup when missing.
type Config struct {
	Env          string        // application environment ("dev", "prod")
	Port         string        // HTTP port to listen on
	DBUser       string        // database username
	DBPass       string        // database password (optional)
	DBHost       string        // database host address
	DBPort       string        // database port number
	DBName       string        // database name
	JWTSecret    string        // secret used to sign session tokens
	TokenTTL     time.Duration // session token lifetime
	BcryptCost   int           // bcrypt cost for password hashing
	CookieSecure bool          // set the Secure flag on the auth cookie
}

// Load reads configuration from the environment. The token TTL
// defaults to 7 days to match the auth cookie's Max-Age; the cookie is
// marked Secure whenever the environment is "prod".
func Load() Config {
	env := must("APP_ENV")
	return Config{
		Env:          env,
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		TokenTTL:     time.Duration(envIntDefault("TOKEN_TTL_HOURS", 24*7)) * time.Hour,
		BcryptCost:   mustInt("BCRYPT_COST"),
		CookieSecure: env == "prod",
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
