// Package config loads switch credentials from the environment or a
// .env file, looked up in the working directory and then its parent.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrMissingCredentials aborts the run before any network activity.
var ErrMissingCredentials = errors.New("missing NET_USER or NET_PASS; set them in the environment or a .env file")

// Config holds everything the run needs from the environment. It is
// built once at startup and passed down by parameter.
type Config struct {
	Username string
	Password string
	// Secret is the enable password. Optional; privileged mode is
	// only entered when it is set.
	Secret string
}

// Load builds a Config from process environment variables NET_USER,
// NET_PASS, and NET_SECRET. A .env file in the working directory (or
// its parent, for a .env shared between scripts) supplies defaults;
// real environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	if path := findEnvFile(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		log.Debugf("loaded credentials file %s", path)
	}

	cfg := &Config{
		Username: v.GetString("net_user"),
		Password: v.GetString("net_pass"),
		Secret:   v.GetString("net_secret"),
	}

	if cfg.Username == "" || cfg.Password == "" {
		return nil, ErrMissingCredentials
	}

	return cfg, nil
}

// findEnvFile returns the first .env found in the working directory or
// its parent, "" when neither exists. Missing files are not an error.
func findEnvFile() string {
	for _, dir := range []string{".", ".."} {
		path := filepath.Join(dir, ".env")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
