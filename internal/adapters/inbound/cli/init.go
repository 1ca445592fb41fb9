package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/config"
	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .yamlvalidator.yaml configuration file",
		Long:  "Create a .yamlvalidator.yaml with the default search path and flags.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig(domain.DefaultConfig())), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .yamlvalidator.yaml")

	return cmd
}

func generateConfig(cfg domain.ProjectConfig) string {
	var b strings.Builder
	vc := cfg.ValidationConfig()

	b.WriteString("# yamlvalidator configuration\n\n")
	b.WriteString("# Files and directories to validate, relative to this directory.\n")
	b.WriteString("search_paths:\n")
	for _, p := range vc.SearchPaths {
		fmt.Fprintf(&b, "  - %s\n", p)
	}
	b.WriteString("\n# Accept mappings that repeat a key.\n")
	fmt.Fprintf(&b, "allow_duplicate_keys: %t\n", vc.AllowDuplicateKeys)
	b.WriteString("\n# Descend into subdirectories of directory search paths.\n")
	fmt.Fprintf(&b, "recursive: %t\n", vc.Recursive)
	b.WriteString("\n# Follow symlinked directories during recursive discovery.\n")
	fmt.Fprintf(&b, "follow_symlinks: %t\n", cfg.FollowsSymlinks())

	return b.String()
}
