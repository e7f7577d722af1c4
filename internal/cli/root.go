package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/appsketch/internal/advisor"
	"github.com/roach88/appsketch/internal/apply"
	"github.com/roach88/appsketch/internal/feature"
	"github.com/roach88/appsketch/internal/project"
	"github.com/roach88/appsketch/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	ConfigPath  string
	StoragePath string

	app *App // built on first use; injectable for tests
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// App bundles the assembled collaborators every command works against.
type App struct {
	Config     *Config
	Store      *store.Store
	Session    *project.Session
	Advisor    *advisor.Advisor
	Applicator *apply.Applicator
	Templates  *feature.Library
	Logger     *zap.Logger
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// App assembles (once) the store, session, and advisor from the config
// and flags, and resumes the last-open project.
func (o *RootOptions) App(cmd *cobra.Command) (*App, error) {
	if o.app != nil {
		return o.app, nil
	}

	cfg, err := LoadConfig(o.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "could not load config", err)
	}
	if o.StoragePath != "" {
		cfg.Storage = o.StoragePath
	}

	logger := zap.NewNop()
	if o.Verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}

	templates, err := feature.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "could not load feature templates", err)
	}

	st, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, WrapExitError(ExitCommandError,
			fmt.Sprintf("could not open storage at %s", cfg.Storage), err)
	}

	session := project.NewSession(st, templates, project.Config{Logger: logger})
	session.Resume(cmd.Context())

	backend, err := advisor.NewBackend(advisor.BackendConfig{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		BaseURL:  cfg.AI.BaseURL,
		Model:    cfg.AI.Model,
	})
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "could not configure AI backend", err)
	}
	adv := advisor.New(advisor.Config{Backend: backend, Logger: logger})

	o.app = &App{
		Config:     cfg,
		Store:      st,
		Session:    session,
		Advisor:    adv,
		Applicator: apply.New(session, logger),
		Templates:  templates,
		Logger:     logger,
	}
	return o.app, nil
}

// formatter builds the command's output formatter from the flags.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// NewRootCommand creates the root command for the appsketch CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appsketch",
		Short: "AppSketch - app structure editor",
		Long:  "Design app structures as screens, journeys, and features, with AI-assisted analysis and handoff exports.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.app != nil {
				_ = opts.app.Close()
				opts.app = nil
			}
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.appsketch/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.StoragePath, "storage", "", "storage file path (overrides config)")

	// Subcommands
	cmd.AddCommand(NewProjectCommand(opts))
	cmd.AddCommand(NewTemplateCommand(opts))
	cmd.AddCommand(NewScreenCommand(opts))
	cmd.AddCommand(NewJourneyCommand(opts))
	cmd.AddCommand(NewFeatureCommand(opts))
	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewStepsCommand(opts))
	cmd.AddCommand(NewChatCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewZoomCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
