package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/undisbeliever/untech-editor-sub002/internal/config"
	"github.com/undisbeliever/untech-editor-sub002/internal/script"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "listedit",
		Short:         "Replay list edit scripts through the undo engine.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addRun(cmd)
	addVersion(cmd)
	return cmd
}

func addRun(topLevel *cobra.Command) {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Run an edit script and print the state after every step.",
		Example: `
listedit run steps.yaml
listedit run steps.yaml --config engine.toml --log-level debug
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}

			logger, err := config.NewLogger(cfg.Log)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			s, err := script.Parse(data)
			if err != nil {
				return err
			}

			r := &script.Runner{
				Script: s,
				Config: cfg,
				Logger: logger.Named("script"),
				Out:    cmd.OutOrStdout(),
			}
			res, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}

			logger.Debug("script finished",
				zap.String("script", args[0]),
				zap.Int("steps", len(s.Steps)),
				zap.Int("declined", res.Declined))
			fmt.Fprintf(cmd.OutOrStdout(), "%d steps, %d declined\n", len(s.Steps), res.Declined)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a TOML or YAML configuration file.")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level.")

	topLevel.AddCommand(cmd)
}

// loadConfig reads path, or starts from the defaults when path is empty.
// Environment overrides apply either way.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := config.Default()
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.Validate()
}

func addVersion(topLevel *cobra.Command) {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the listedit version.",
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listedit %s (commit %s, built %s)\n", version, commit, date)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print just the version number.")
	topLevel.AddCommand(cmd)
}
