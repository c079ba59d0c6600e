// Package config loads the affine CLI configuration from flags, environment
// variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vdparikh/affine/subtle"
)

// EnvPrefix is the prefix of environment variables read by Load,
// e.g. AFFINE_A and AFFINE_B.
const EnvPrefix = "AFFINE"

// ErrNoKey is returned by ValidateKey when neither a key pair nor a keyset
// has been configured.
var ErrNoKey = errors.New("no key configured: set --a and --b, AFFINE_A and AFFINE_B, or --keyset")

// boundFlags are the command flags mirrored into the configuration when the
// command defines them.
var boundFlags = []string{"a", "b", "keyset", "verbose"}

// Config holds the settings of one CLI invocation.
type Config struct {
	A       int    `mapstructure:"a"`
	B       int    `mapstructure:"b"`
	Keyset  string `mapstructure:"keyset"`
	Verbose bool   `mapstructure:"verbose"`

	// HasKey is set when a was given explicitly by flag, environment or file.
	HasKey bool `mapstructure:"-"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// userConfigDir returns the per-user directory searched for affine.yaml.
func userConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "affine"), nil
}

// Load builds the configuration for cmd. Precedence, highest first: flags set
// on the command line, AFFINE_* environment variables, the config file
// (configFile when not empty, otherwise affine.yaml in the current or user
// config directory), defaults.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("b", 0)
	v.SetDefault("verbose", false)

	v.SetConfigName("affine")
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	v.AddConfigPath(".")
	if dir, err := userConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless it was asked for explicitly.
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cmd != nil {
		for _, name := range boundFlags {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(name, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	c.HasKey = v.IsSet("a")
	c.File = v.ConfigFileUsed()

	return &c, nil
}

// ValidateKey checks that a usable key source is configured. A keyset file
// takes precedence over a key pair; an explicit a must be coprime with 26.
func (c *Config) ValidateKey() error {
	if c.Keyset != "" {
		return nil
	}
	if !c.HasKey {
		return ErrNoKey
	}
	if err := subtle.Validate(c.A); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
