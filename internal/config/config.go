package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version   string       `yaml:"version" json:"version"`
	Server    ServerConfig `yaml:"server" json:"server"`
	SeededRNG SeededRNG    `yaml:"seeded_rng" json:"seeded_rng"`
	Start     Balance      `yaml:"start" json:"start"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	DevStatic bool   `yaml:"dev_static" json:"dev_static"`
	StaticDir string `yaml:"static_dir" json:"static_dir"`
}

// SeededRNG makes random event rolls reproducible across runs.
type SeededRNG struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Seed    int64 `yaml:"seed" json:"seed"`
}

func (s *ServerConfig) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":42069"
	}
	if s.StaticDir == "" {
		s.StaticDir = "static"
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Start.ApplyDefaults()
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	if err := r.Start.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	c := &Config{Version: "1", Start: DefaultBalance()}
	c.ApplyDefaults()
	return c
}
