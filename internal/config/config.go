package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"rhystmorgan/onboard/internal/address"
	"rhystmorgan/onboard/internal/api"
)

const (
	EnvPrefix  = "ONBOARD"
	ConfigName = "onboard"

	DefaultAPIURL = "http://localhost:8000"
)

type AppConfig struct {
	APIURL         string        `mapstructure:"api_url" validate:"required,url"`
	LookupURL      string        `mapstructure:"lookup_url" validate:"required,url"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	LookupTimeout  time.Duration `mapstructure:"lookup_timeout" validate:"gt=0"`
	LookupCacheTTL time.Duration `mapstructure:"lookup_cache_ttl" validate:"gt=0"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile        string        `mapstructure:"log_file"`
	MetricsAddr    string        `mapstructure:"metrics_addr" validate:"omitempty,hostname_port"`
	Debug          bool          `mapstructure:"debug"`
}

// Load reads configuration from, in increasing priority: defaults, an
// optional onboard.{yaml,toml,json} in the user config dir or the working
// directory, a .env file, and ONBOARD_* environment variables.
func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetConfigName(ConfigName)
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, ConfigName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return LoadFrom(v, ".env")
}

// LoadFrom loads into an existing viper instance. Missing env files are
// ignored; variables already present in the environment win over them.
func LoadFrom(v *viper.Viper, envFiles ...string) (*AppConfig, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &AppConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	config.LogLevel = strings.ToLower(config.LogLevel)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("lookup_url", d.LookupURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("lookup_timeout", d.LookupTimeout)
	v.SetDefault("lookup_cache_ttl", d.LookupCacheTTL)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("metrics_addr", d.MetricsAddr)
	v.SetDefault("debug", d.Debug)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("invalid %s: %v (%s)", fe.Field(), fe.Value(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (c *AppConfig) ToClientConfig() api.Config {
	return api.Config{
		BaseURL: c.APIURL,
		Timeout: c.Timeout,
	}
}

func (c *AppConfig) ToLookupConfig() address.Config {
	return address.Config{
		BaseURL:  c.LookupURL,
		Timeout:  c.LookupTimeout,
		CacheTTL: c.LookupCacheTTL,
	}
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		APIURL:         DefaultAPIURL,
		LookupURL:      address.DefaultBaseURL,
		Timeout:        api.DefaultTimeout,
		LookupTimeout:  address.DefaultTimeout,
		LookupCacheTTL: address.DefaultCacheTTL,
		LogLevel:       "info",
	}
}
