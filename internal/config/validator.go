package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and rejects inconsistent combinations
func (c *Config) Validate() error {
	if err := checkEnvSchemaVersion(); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.StorageDriver {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set when STORAGE_DRIVER=%s", StorageSQLite)
		}
	case StoragePostgres:
		var missing []string
		for _, kv := range [][2]string{{"DB_HOST", c.DBHost}, {"DB_NAME", c.DBName}, {"DB_USER", c.DBUser}} {
			if kv[1] == "" {
				missing = append(missing, kv[0])
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required environment variables for %s: %s", StoragePostgres, strings.Join(missing, ", "))
		}
	}

	if c.SaveInterval < c.TickInterval {
		return fmt.Errorf("SAVE_INTERVAL (%s) must not be shorter than TICK_INTERVAL (%s)", c.SaveInterval, c.TickInterval)
	}

	if c.Environment == EnvProd && c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set in %s", EnvProd)
	}

	return nil
}

// Warnings reports non-fatal issues such as example secrets left in place
func (c *Config) Warnings() []string {
	var warnings []string

	if c.StorageDriver == StoragePostgres && c.DBPassword == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.APIKey == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is empty - mutating routes are unauthenticated")
	}

	return warnings
}

func checkEnvSchemaVersion() error {
	v, ok := os.LookupEnv("ENV_SCHEMA_VERSION")
	if !ok || v == ExpectedEnvSchemaVersion {
		return nil
	}
	return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, v)
}
