package config

import (
	"reflect"
	"strings"

	"hood-sync/core/database"
	"hood-sync/core/logger"
	"hood-sync/core/server"
	"hood-sync/core/storage"
	"hood-sync/feature/feed"
	"hood-sync/feature/hood"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations owned by the packages they configure.
type Config struct {
	// Server holds configuration for the HTTP entry point.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Feed holds configuration for the merchant CSV feed.
	Feed feed.Config `mapstructure:"feed"`
	// Hood holds configuration for the Hood.de marketplace API.
	Hood hood.Config `mapstructure:"hood"`
	// Database holds configuration for the optional run journal database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the optional audit archive.
	Storage storage.Config `mapstructure:"storage"`
}

// ConfigurationError reports a missing or invalid required setting.
// It is fatal to the whole run and is surfaced before any network call.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// LoadConfig loads configuration from environment variables and a .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine, production injects real environment variables.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Walk the struct tags to register defaults for every key.
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. FEED_URL -> feed.url).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that every required setting is present.
// The returned error is a *ConfigurationError so callers can report the
// failure without attempting a run.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ConfigurationError{Err: err}
	}
	return nil
}

// bindValues iterates the struct via reflection and registers default values
// in Viper based on the 'default' and 'mapstructure' tags. Registering a key
// (even with an empty default) is what makes AutomaticEnv pick it up.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
