package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/config"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/gitinfo"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/logsink"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/parser"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/resolver"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/scanner"
	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/tui"
	"github.com/yamlvalidator/yamlvalidator/internal/application"
	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		projectPath string
		configFile  string
		jsonOutput  bool
		quiet       bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate YAML files under the configured search paths",
		Long: `Validate every .yaml and .yml file found under the search paths.

Search paths come from .yamlvalidator.yaml in the project directory and may
be replaced by positional arguments. Relative paths resolve against the
project directory. The run stops at the first invalid file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet && verbose {
				return fmt.Errorf("--quiet and --verbose are mutually exclusive")
			}

			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			projectCfg, err := loadProjectConfig(config.New(), absPath, configFile)
			if err != nil {
				return err
			}
			projectCfg, err = config.Overlay(projectCfg, cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				projectCfg.SearchPaths = args
				if err := projectCfg.Validate(); err != nil {
					return fmt.Errorf("invalid arguments: %w", err)
				}
			}

			level := logsink.Normal
			switch {
			case quiet:
				level = logsink.Quiet
			case verbose:
				level = logsink.Verbose
			}
			vc := projectCfg.ValidationConfig()
			logs := logsink.New(cmd.ErrOrStderr(), level)
			logs.Logger().Debug("effective config",
				"project", absPath,
				"search_paths", vc.SearchPaths,
				"recursive", vc.Recursive,
				"allow_duplicate_keys", vc.AllowDuplicateKeys,
				"follow_symlinks", projectCfg.FollowsSymlinks(),
			)

			// JSON output keeps stderr clean unless --verbose asks for the log too.
			recorder := &domain.EventRecorder{}
			var sink domain.EventSink = logs
			if jsonOutput {
				sink = recorder
				if verbose {
					sink = domain.MultiSink{recorder, logs}
				}
			}

			sc := scanner.New(scanner.WithFollowSymlinks(projectCfg.FollowsSymlinks()))
			svc := application.NewValidateService(resolver.New(absPath), sc, sc, parser.New(), sink)

			run, runErr := svc.Validate(vc)

			if jsonOutput {
				report := application.NewReport(run, runErr)
				report.Events = recorder.Messages()
				report.AttachRevision(gitinfo.New(), absPath)
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else if !quiet {
				if runErr != nil {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderAbort(runErr))
				} else {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(run))
				}
			}

			if runErr != nil {
				return fmt.Errorf("validation aborted: %w", runErr)
			}
			return run.Err()
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", ".", "Project directory; relative search paths resolve against it")
	cmd.Flags().StringVar(&configFile, "config", "", "Config file (default is <project>/.yamlvalidator.yaml)")
	cmd.Flags().Bool("recursive", false, "Descend into subdirectories of directory search paths")
	cmd.Flags().Bool("allow-duplicate-keys", false, "Accept mappings that repeat a key")
	cmd.Flags().Bool("follow-symlinks", false, "Follow symlinked directories during recursive discovery")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run report as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Log failures only and skip the summary")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail with timestamps")

	return cmd
}

func loadProjectConfig(loader domain.ConfigLoader, projectPath, configFile string) (domain.ProjectConfig, error) {
	if configFile != "" {
		return loader.LoadFile(configFile)
	}
	return loader.Load(projectPath)
}
