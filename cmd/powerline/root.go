package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/powerline/internal/config"
	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/logger"
	"github.com/alexisbeaulieu97/powerline/internal/render"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
	"github.com/alexisbeaulieu97/powerline/internal/segments"
	"github.com/alexisbeaulieu97/powerline/internal/theme"
)

type rootFlags struct {
	configPath  string
	verbose     bool
	themePath   string
	shell       string
	modules     []string
	exitCode    int
	jobs        int
	cwdMaxDepth int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "powerline",
		Short: "Print a powerline-style shell prompt",
		Long: `Print a powerline-style shell prompt for bash or zsh.

Add to ~/.bashrc:
  PROMPT_COMMAND='PS1="$(powerline --shell bash --error $? --jobs $(jobs -p | wc -l))"'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Settings file (default $XDG_CONFIG_HOME/powerline/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging on stderr")

	cmd.Flags().StringVarP(&flags.themePath, "theme", "t", "", "Theme file overriding the built-in palette")
	cmd.Flags().StringVar(&flags.shell, "shell", "", "Escape style for the prompt: bare, bash or zsh")
	cmd.Flags().StringSliceVarP(&flags.modules, "modules", "m", nil, "Comma separated segments to show, in order")
	cmd.Flags().IntVarP(&flags.exitCode, "error", "e", 0, "Exit status of the previous command")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "Number of background jobs")
	cmd.Flags().IntVar(&flags.cwdMaxDepth, "cwd-max-depth", 0, "Maximum number of directories shown by the cwd segment (0 shows all)")

	cmd.AddCommand(newThemeCmd(flags))
	cmd.AddCommand(newSegmentsCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// promptOptions is the settings file with command-line flags applied.
type promptOptions struct {
	themePath   string
	shell       render.Shell
	segments    []string
	cwdMaxDepth int
	logLevel    string
}

func resolveOptions(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) (promptOptions, error) {
	opts := promptOptions{
		themePath:   cfg.Theme,
		segments:    cfg.Segments,
		cwdMaxDepth: cfg.CwdMaxDepth,
		logLevel:    cfg.LogLevel,
	}

	shellName := cfg.Shell
	changed := cmd.Flags().Changed
	if changed("theme") {
		opts.themePath = flags.themePath
	}
	if changed("shell") {
		shellName = flags.shell
	}
	if changed("modules") {
		opts.segments = nil
		for _, name := range flags.modules {
			if name = strings.TrimSpace(name); name != "" {
				opts.segments = append(opts.segments, name)
			}
		}
	}
	if changed("cwd-max-depth") {
		opts.cwdMaxDepth = flags.cwdMaxDepth
	}
	if flags.verbose {
		opts.logLevel = "debug"
	}

	if len(opts.segments) == 0 {
		opts.segments = segments.DefaultOrder
	}
	if shellName == "" {
		shellName = string(render.ShellBare)
	}

	shell, err := render.ParseShell(shellName)
	if err != nil {
		return promptOptions{}, err
	}
	opts.shell = shell

	return opts, nil
}

func runPrompt(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return newCommandError("load settings", "reading the settings file", err, "Fix the settings file or pass --config with another path.")
	}

	opts, err := resolveOptions(cmd, flags, cfg)
	if err != nil {
		return newCommandError("build prompt", "resolving options", err, "")
	}

	log, err := newLogger(cmd, opts.logLevel)
	if err != nil {
		return newCommandError("build prompt", "creating logger", err, "")
	}

	th, err := loadTheme(opts.themePath)
	if err != nil {
		log.Error(err, "theme rejected")
		return newCommandError("build prompt", "loading theme", err, "Run 'powerline theme check <file>' to locate the broken line.")
	}

	reg, err := newRegistry(log)
	if err != nil {
		return err
	}

	env := detector.DefaultEnv()
	env.ExitCode = flags.exitCode
	env.Jobs = flags.jobs
	env.CwdMaxDepth = opts.cwdMaxDepth
	env.Shell = string(opts.shell)

	if err := config.ValidateSegments(cfg, reg.Has); err != nil {
		return newCommandError("load settings", "checking segment names", err, "Run 'powerline segments' to list available segments.")
	}

	detectors, err := reg.Build(opts.segments, env)
	if err != nil {
		return newCommandError("build prompt", "selecting segments", err, "")
	}

	p := segment.NewPowerline(th)
	if err := detector.Run(cmd.Context(), p, detectors, log); err != nil {
		return newCommandError("build prompt", "running segment detectors", err, "")
	}

	log.WithFields(map[string]any{"segments": p.Len(), "shell": string(opts.shell)}).Info("prompt assembled")
	return render.Render(cmd.OutOrStdout(), p.Segments(), th, opts.shell)
}

func newLogger(cmd *cobra.Command, level string) (*logger.Logger, error) {
	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: true,
		Writer:        cmd.ErrOrStderr(),
	})
}

func newRegistry(log *logger.Logger) (*detector.Registry, error) {
	reg := detector.NewRegistry(log)
	if err := segments.Register(reg); err != nil {
		return nil, newCommandError("build prompt", "registering segment detectors", err, "")
	}
	return reg, nil
}

// loadTheme returns the built-in palette when path is empty.
func loadTheme(path string) (*theme.Theme, error) {
	if path == "" {
		return theme.Default(), nil
	}
	return theme.Load(path)
}
