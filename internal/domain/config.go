package domain

import (
	"fmt"
	"strings"
)

// DefaultSearchPath is the conventional resource directory validated when
// nothing else is configured.
const DefaultSearchPath = "src/main/resources/"

// ProjectConfig holds project-level configuration loaded from .yamlvalidator.yaml.
// Pointer fields distinguish "not specified" from false.
type ProjectConfig struct {
	SearchPaths        []string `yaml:"search_paths"         json:"search_paths"`
	AllowDuplicateKeys *bool    `yaml:"allow_duplicate_keys" json:"allow_duplicate_keys"`
	Recursive          *bool    `yaml:"recursive"            json:"recursive"`
	FollowSymlinks     *bool    `yaml:"follow_symlinks"      json:"follow_symlinks"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		SearchPaths:        []string{DefaultSearchPath},
		AllowDuplicateKeys: boolPtr(false),
		Recursive:          boolPtr(false),
		FollowSymlinks:     boolPtr(false),
	}
}

// Validate checks the config for entries a run cannot use.
func (c ProjectConfig) Validate() error {
	for i, p := range c.SearchPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("search_paths[%d] is empty", i)
		}
	}
	return nil
}

// Merge overlays the non-nil fields of override on c.
func (c ProjectConfig) Merge(override ProjectConfig) ProjectConfig {
	result := c
	if len(override.SearchPaths) > 0 {
		result.SearchPaths = append([]string(nil), override.SearchPaths...)
	}
	if override.AllowDuplicateKeys != nil {
		result.AllowDuplicateKeys = boolPtr(*override.AllowDuplicateKeys)
	}
	if override.Recursive != nil {
		result.Recursive = boolPtr(*override.Recursive)
	}
	if override.FollowSymlinks != nil {
		result.FollowSymlinks = boolPtr(*override.FollowSymlinks)
	}
	return result
}

// ValidationConfig converts the project config into the inputs of one run.
// Unset flags read as false.
func (c ProjectConfig) ValidationConfig() ValidationConfig {
	return ValidationConfig{
		SearchPaths:        append([]string(nil), c.SearchPaths...),
		AllowDuplicateKeys: boolValue(c.AllowDuplicateKeys),
		Recursive:          boolValue(c.Recursive),
	}
}

// FollowsSymlinks reports whether recursive discovery descends symlinked directories.
func (c ProjectConfig) FollowsSymlinks() bool {
	return boolValue(c.FollowSymlinks)
}

func boolPtr(b bool) *bool { return &b }

func boolValue(b *bool) bool { return b != nil && *b }
