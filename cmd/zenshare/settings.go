package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/zenmark/zenshare"
)

// Environment variables read after the config file and before flags.
const (
	EnvHost    = "ZENSHARE_HOST"
	EnvOrigin  = "ZENSHARE_ORIGIN"
	EnvExpire  = "ZENSHARE_EXPIRE"
	EnvTimeout = "ZENSHARE_TIMEOUT"
	EnvConfig  = "ZENSHARE_CONFIG"
)

// settings is the effective CLI configuration. Sources are applied in order:
// defaults, config file, .env and environment, command-line flags.
type settings struct {
	Host    string `toml:"host"`
	Origin  string `toml:"origin"`
	Expire  string `toml:"expire"`
	Timeout string `toml:"timeout,omitempty"`
	Retries int    `toml:"retries,omitempty"`
}

func defaultSettings() settings {
	return settings{
		Host:   zenshare.DefaultHost,
		Origin: zenshare.DefaultOrigin,
		Expire: string(zenshare.DefaultExpiration),
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/zenshare/config.toml or the
// platform equivalent.
func defaultConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "zenshare", "config.toml")
}

// loadTOML decodes path into s. A missing file is not an error.
func loadTOML(path string, s *settings) error {
	if path == "" {
		return nil
	}
	md, err := toml.DecodeFile(path, s)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("read config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// saveTOML writes s to path, creating parent directories.
func saveTOML(path string, s settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(s)
}

// loadDotenv loads .env from the working directory into the process
// environment without overriding variables that are already set.
func loadDotenv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *settings) applyEnv() {
	if v := os.Getenv(EnvHost); v != "" {
		s.Host = v
	}
	if v, ok := os.LookupEnv(EnvOrigin); ok {
		s.Origin = v
	}
	if v := os.Getenv(EnvExpire); v != "" {
		s.Expire = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		s.Timeout = v
	}
}

// applyFlags copies flags the user set explicitly.
func (s *settings) applyFlags(flags *pflag.FlagSet) {
	if f := flags.Lookup("host"); f != nil && f.Changed {
		s.Host = f.Value.String()
	}
	if f := flags.Lookup("origin"); f != nil && f.Changed {
		s.Origin = f.Value.String()
	}
	if f := flags.Lookup("expire"); f != nil && f.Changed {
		s.Expire = f.Value.String()
	}
}

func (s settings) timeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}

// resolveSettings builds the effective settings for a command invocation.
func resolveSettings(configPath string, flags *pflag.FlagSet) (settings, error) {
	s := defaultSettings()
	if err := loadTOML(configPath, &s); err != nil {
		return s, err
	}
	if err := loadDotenv(); err != nil {
		return s, fmt.Errorf("read .env: %w", err)
	}
	s.applyEnv()
	s.applyFlags(flags)

	if !zenshare.Expiration(s.Expire).Valid() {
		return s, fmt.Errorf("unknown expiration %q (see 'zenshare expirations')", s.Expire)
	}
	return s, nil
}

// clientOptions translates settings into client options.
func (s settings) clientOptions() ([]zenshare.Option, error) {
	timeout, err := s.timeout()
	if err != nil {
		return nil, err
	}
	opts := []zenshare.Option{
		zenshare.WithHost(s.Host),
		zenshare.WithOrigin(s.Origin),
		zenshare.WithRetries(s.Retries),
	}
	if timeout > 0 {
		opts = append(opts, zenshare.WithTimeout(timeout))
	}
	return opts, nil
}
