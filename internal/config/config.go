// Package config loads the server configuration from defaults, an optional YAML file and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

// Database drivers.
const (
	DriverStorm = "storm"
	DriverMongo = "mongo"
)

// DotEnv is the file loaded into the environment before reading it.
var DotEnv = ".env"

var defaults = map[string]any{
	"port":            "5000",
	"database.driver": DriverStorm,
	"database.path":   "tastybites.db",
	"database.codec":  "msgpack",
	"database.host":   "cluster0.njyko.mongodb.net",
	"database.name":   "tastyBites",
	"token.ttl":       "1h",
	"log.level":       "info",
}

// environment maps the environment variables to their configuration key.
var environment = map[string]string{
	"PORT":         "port",
	"ADDRESS":      "address",
	"DB_DRIVER":    "database.driver",
	"DB_PATH":      "database.path",
	"DB_CODEC":     "database.codec",
	"DB_URI":       "database.uri",
	"DB_USER":      "database.user",
	"DB_PASSWORD":  "database.password",
	"DB_HOST":      "database.host",
	"DB_NAME":      "database.name",
	"ACCESS_TOKEN": "token.secret",
	"TOKEN_TTL":    "token.ttl",
	"LOG_LEVEL":    "log.level",
	"LOG_FILE":     "log.file",
}

type (
	// A Config holds all the server settings.
	Config struct {
		Address  string
		Database Database
		Token    Token
		Log      Log
	}

	// Database settings.
	Database struct {
		Driver   string
		Path     string
		Codec    string
		URI      string
		User     string
		Password string
		Host     string
		Name     string
	}

	// Token settings.
	Token struct {
		Secret []byte
		TTL    time.Duration
	}

	// Log settings.
	Log struct {
		Level string
		File  string
	}
)

// Load reads the configuration.
// The file is optional, the environment has the highest precedence.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(DotEnv); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "could not load dotenv file")
	}

	konf := koanf.New(".")
	if err := konf.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, "could not load defaults")
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration file")
		}
	}

	err := konf.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return environment[key], value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load environment")
	}

	cfg := &Config{
		Address: konf.String("address"),
		Database: Database{
			Driver:   konf.String("database.driver"),
			Path:     konf.String("database.path"),
			Codec:    konf.String("database.codec"),
			URI:      konf.String("database.uri"),
			User:     konf.String("database.user"),
			Password: konf.String("database.password"),
			Host:     konf.String("database.host"),
			Name:     konf.String("database.name"),
		},
		Token: Token{
			Secret: konf.Bytes("token.secret"),
			TTL:    konf.Duration("token.ttl"),
		},
		Log: Log{
			Level: konf.String("log.level"),
			File:  konf.String("log.file"),
		},
	}

	if cfg.Address == "" {
		cfg.Address = ":" + konf.String("port")
	}

	return cfg, nil
}

// Validate checks the settings needed to run the server.
func (c *Config) Validate() error {
	if len(c.Token.Secret) == 0 {
		return errors.New("token secret not found")
	}
	if c.Token.TTL <= 0 {
		return errors.New("token ttl must be positive")
	}

	switch c.Database.Driver {
	case DriverStorm:
		if c.Database.Path == "" {
			return errors.New("database path not found")
		}
	case DriverMongo:
		if c.Database.URI == "" && (c.Database.User == "" || c.Database.Password == "") {
			return errors.New("database credentials not found")
		}
	default:
		return errors.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	return nil
}

// MongoURI returns the MongoDB connection string.
func (d Database) MongoURI() string {
	if d.URI != "" {
		return d.URI
	}

	return fmt.Sprintf("mongodb+srv://%s@%s/?retryWrites=true&w=majority",
		url.UserPassword(d.User, d.Password).String(),
		d.Host,
	)
}
