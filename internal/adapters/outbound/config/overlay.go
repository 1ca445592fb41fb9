package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// EnvPrefix prefixes the environment variables that override the config
// file, e.g. YAMLVALIDATOR_RECURSIVE=true.
const EnvPrefix = "YAMLVALIDATOR"

// Config keys, shared by the file, the environment and bound flags.
const (
	KeySearchPaths        = "search_paths"
	KeyAllowDuplicateKeys = "allow_duplicate_keys"
	KeyRecursive          = "recursive"
	KeyFollowSymlinks     = "follow_symlinks"
)

// FlagNames maps config keys to the command-line flags that override them.
var FlagNames = map[string]string{
	KeyAllowDuplicateKeys: "allow-duplicate-keys",
	KeyRecursive:          "recursive",
	KeyFollowSymlinks:     "follow-symlinks",
}

// Overlay layers the environment and explicitly set flags over cfg.
// Precedence, highest first: changed flags, YAMLVALIDATOR_* variables, cfg.
// flags may be nil. YAMLVALIDATOR_SEARCH_PATHS is split on whitespace.
func Overlay(cfg domain.ProjectConfig, flags *pflag.FlagSet) (domain.ProjectConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	vc := cfg.ValidationConfig()
	v.SetDefault(KeySearchPaths, vc.SearchPaths)
	v.SetDefault(KeyAllowDuplicateKeys, vc.AllowDuplicateKeys)
	v.SetDefault(KeyRecursive, vc.Recursive)
	v.SetDefault(KeyFollowSymlinks, cfg.FollowsSymlinks())

	if flags != nil {
		for key, name := range FlagNames {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return domain.ProjectConfig{}, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	allowDuplicates := v.GetBool(KeyAllowDuplicateKeys)
	recursive := v.GetBool(KeyRecursive)
	follow := v.GetBool(KeyFollowSymlinks)

	result := domain.ProjectConfig{
		SearchPaths:        v.GetStringSlice(KeySearchPaths),
		AllowDuplicateKeys: &allowDuplicates,
		Recursive:          &recursive,
		FollowSymlinks:     &follow,
	}
	if err := result.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s environment: %w", EnvPrefix, err)
	}
	return result, nil
}
