package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mvvideos/internal/config"
	"mvvideos/internal/console"
	"mvvideos/internal/history"
	"mvvideos/internal/logging"
	"mvvideos/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var (
		configFlag string
		extensions string
		size       string
		dryRun     bool
		assumeYes  bool
		verbosity  int
	)

	rootCmd := &cobra.Command{
		Use:   "mvvideos [flags] SOURCE... DEST",
		Short: "Move video files from a nested directory structure into another, flat directory",
		Long: `mvvideos recursively searches the given source directories for video files
matching the configured extensions and minimum size, then moves them into a
single flat destination directory. File names are kept; directory structure
is discarded.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, args, moveOptions{
				configPath: configFlag,
				extensions: extensions,
				size:       size,
				dryRun:     dryRun,
				assumeYes:  assumeYes,
				verbosity:  verbosity,
			})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.Flags().StringVarP(&extensions, "extensions", "e", "", "File extensions to consider (default \"avi,mkv,mp4\")")
	rootCmd.Flags().StringVarP(&size, "size", "s", "", "Only consider files bigger than this (default \"100M\")")
	rootCmd.Flags().BoolVarP(&dryRun, "dry", "d", false, "Only show what would be done")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(newConfigCommand(&configFlag))
	rootCmd.AddCommand(newHistoryCommand(&configFlag))

	return rootCmd
}

type moveOptions struct {
	configPath string
	extensions string
	size       string
	dryRun     bool
	assumeYes  bool
	verbosity  int
}

func runMove(cmd *cobra.Command, args []string, opts moveOptions) error {
	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, opts.verbosity)
	if err != nil {
		return err
	}

	request := pipeline.Request{
		Sources:      args[:len(args)-1],
		Destination:  args[len(args)-1],
		Size:         opts.size,
		Extensions:   opts.extensions,
		DryRun:       opts.dryRun,
		AssumeYes:    opts.assumeYes || !cfg.Defaults.Confirm,
		ShowProgress: isatty.IsTerminal(os.Stderr.Fd()),
	}
	if request.Size == "" {
		request.Size = cfg.Defaults.Size
	}
	if request.Extensions == "" {
		request.Extensions = cfg.Defaults.Extensions
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history journal unavailable", logging.Error(err))
		} else {
			defer store.Close()
		}
	}

	confirm := func(prompt string) (bool, error) {
		return console.AskForConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, "yes")
	}

	runner := pipeline.NewWithDependencies(cfg, logger, nil, store, confirm)
	report, err := runner.Run(cmd.Context(), request)
	if err != nil {
		if errors.Is(err, pipeline.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		return err
	}

	renderReport(cmd.OutOrStdout(), report, request.Destination)
	return nil
}

func newLogger(cfg *config.Config, verbosity int) (*slog.Logger, error) {
	level := logging.LevelFromVerbosity(verbosity)
	if verbosity == 0 && cfg.Logging.Level != "" {
		parsed, err := logging.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var componentLevels map[string]slog.Level
	if len(cfg.Logging.ComponentOverrides) > 0 {
		componentLevels = make(map[string]slog.Level, len(cfg.Logging.ComponentOverrides))
		for component, name := range cfg.Logging.ComponentOverrides {
			parsed, err := logging.ParseLevel(name)
			if err != nil {
				return nil, err
			}
			componentLevels[component] = parsed
		}
	}

	return logging.New(logging.Options{
		Level:           level,
		Writer:          os.Stderr,
		Color:           logging.ColorEnabled(cfg.Logging.Color, os.Stderr),
		ComponentLevels: componentLevels,
	}), nil
}
