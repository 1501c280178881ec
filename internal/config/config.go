// Package config loads the tool environment opkit runs with: compiler,
// signing credentials and helper binaries. Values come from environment
// variables, optionally backed by a file named in OPKIT_CONFIG.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"opkit/internal/domain"
)

// ConfigEnv names an optional TOML or YAML file with the same keys as the
// environment variables, lowercased.
const ConfigEnv = "OPKIT_CONFIG"

// Env holds the external tool configuration.
type Env struct {
	CXX             string `mapstructure:"cxx"`
	CXXFlags        string `mapstructure:"cxx_flags"`
	AppleID         string `mapstructure:"apple_id"`
	AppleIDPassword string `mapstructure:"apple_id_password"`
	Signtool        string `mapstructure:"signtool"`
	CSCKeyPassword  string `mapstructure:"csc_key_password"`
	Makeappx        string `mapstructure:"makeappx"`

	// Prefix is the directory holding the native runtime sources handed
	// to the compiler.
	Prefix string `mapstructure:"opkit_prefix"`

	// CXXDefaulted is set when CXX was empty and the platform default was
	// substituted.
	CXXDefaulted bool `mapstructure:"-"`
}

var envNames = map[string]string{
	"cxx":               "CXX",
	"cxx_flags":         "CXX_FLAGS",
	"apple_id":          "APPLE_ID",
	"apple_id_password": "APPLE_ID_PASSWORD",
	"signtool":          "SIGNTOOL",
	"csc_key_password":  "CSC_KEY_PASSWORD",
	"makeappx":          "MAKEAPPX",
	"opkit_prefix":      "OPKIT_PREFIX",
}

// DefaultCXX is the compiler used on p when CXX is unset.
func DefaultCXX(p domain.Platform) string {
	if p == domain.Windows {
		return "clang++"
	}
	return "/usr/bin/g++"
}

// Load reads the environment for platform p.
func Load(p domain.Platform) (Env, error) {
	v := viper.New()
	for key, name := range envNames {
		if err := v.BindEnv(key, name); err != nil {
			return Env{}, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	v.SetDefault("makeappx", "makeappx.exe")
	v.SetDefault("opkit_prefix", defaultPrefix())

	if path := os.Getenv(ConfigEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Env{}, &domain.ConfigError{Path: path, Err: err}
		}
	}

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		return Env{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if env.CXX == "" {
		env.CXX = DefaultCXX(p)
		env.CXXDefaulted = true
	}
	return env, nil
}

// defaultPrefix is the directory above the one holding the running binary.
func defaultPrefix() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(filepath.Dir(exe))
}
