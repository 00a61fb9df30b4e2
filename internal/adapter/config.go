package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFiles are looked up in the working directory when no config
// file is given explicitly.
var DefaultConfigFiles = []string{".hendrix.yaml", ".hendrix.yml", ".hendrix.toml"}

// Config mirrors the run flags. Zero values mean "not set".
type Config struct {
	Inputs    []string `yaml:"inputs" toml:"inputs"`
	Classpath []string `yaml:"classpath" toml:"classpath"`
	Exclude   []string `yaml:"exclude" toml:"exclude"`
	Manual    []string `yaml:"manual" toml:"manual"`
	YAML      []string `yaml:"yaml" toml:"yaml"`
	Parallel  int      `yaml:"parallel" toml:"parallel"`
	Report    string   `yaml:"report" toml:"report"`
	DryRun    bool     `yaml:"dry_run" toml:"dry_run"`
}

// LoadConfig reads a YAML or TOML config file, chosen by extension.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("decode config %s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported format, use .yaml or .toml", path)
	}

	if cfg.Parallel < 0 {
		return cfg, fmt.Errorf("config %s: parallel must not be negative", path)
	}

	return cfg, nil
}

// FindConfig returns the first default config file present in dir.
func FindConfig(dir string) (string, bool, error) {
	for _, name := range DefaultConfigFiles {
		path := filepath.Join(dir, name)

		_, err := os.Stat(path)
		if err == nil {
			return path, true, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, err
		}
	}

	return "", false, nil
}
