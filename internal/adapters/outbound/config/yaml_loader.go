package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// FileName is the project configuration file looked up in the project directory.
const FileName = ".yamlvalidator.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .yamlvalidator.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .yamlvalidator.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}
	return parse(data, FileName)
}

// LoadFile reads an explicitly named config file. Unlike Load, a missing
// file is an error.
func (l *YAMLLoader) LoadFile(path string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("reading config: %w", err)
	}
	return parse(data, path)
}

func parse(data []byte, name string) (domain.ProjectConfig, error) {
	var cfg domain.ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	// Validate before merging so typos in the user's input surface.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return domain.DefaultConfig().Merge(cfg), nil
}
