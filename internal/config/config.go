// Package config loads application configuration from environment
// variables.  main loads a .env file first (via godotenv) so local
// development needs no exported shell state.
package config

import (
    "log"
    "os"
    "strconv"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable; required values halt the
// program when missing.
type Config struct {
    Env                 string // application environment (e.g. "dev", "prod")
    Port                string // HTTP port to listen on
    DBUser              string // database username
    DBPass              string // database password (optional)
    DBHost              string // database host address
    DBPort              string // database port number
    DBName              string // database name
    JWTSecret           string // secret used to sign JWTs
    AccessTTLMin        int    // access token time-to-live in minutes
    RefreshTTLDays      int    // refresh token time-to-live in days
    BcryptCost          int    // bcrypt cost for password hashing
    RequireAvailability bool   // reject customer bookings that overlap an existing reservation
}

// Load reads configuration from environment variables.  Required
// variables are enforced by must(); missing ones exit with a fatal
// log message.  BOOKING_REQUIRE_AVAILABILITY defaults to false,
// preserving the historical "trust the caller" booking behavior;
// flip it on to make the customer path re-check availability before
// insert.
func Load() Config {
    return Config{
        Env:                 must("APP_ENV"),
        Port:                must("APP_PORT"),
        DBUser:              must("DB_USER"),
        DBPass:              os.Getenv("DB_PASS"),
        DBHost:              must("DB_HOST"),
        DBPort:              must("DB_PORT"),
        DBName:              must("DB_NAME"),
        JWTSecret:           must("JWT_SECRET"),
        AccessTTLMin:        mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays:      mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:          mustInt("BCRYPT_COST"),
        RequireAvailability: envBool("BOOKING_REQUIRE_AVAILABILITY", false),
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
