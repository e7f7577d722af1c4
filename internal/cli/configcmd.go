package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change CLI configuration",
	}
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	cmd.AddCommand(newConfigSetKeyCommand(rootOpts))
	cmd.AddCommand(newConfigTestCommand(rootOpts))
	return cmd
}

// maskKey hides all but the last four characters of a secret.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the effective configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cfg, err := LoadConfig(rootOpts.ConfigPath)
			if err != nil {
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}

			provider := cfg.AI.Provider
			if provider == "" {
				provider = "(none; heuristic advisory mode)"
			}
			var text strings.Builder
			fmt.Fprintf(&text, "storage:     %s\n", cfg.Storage)
			fmt.Fprintf(&text, "ai.provider: %s\n", provider)
			fmt.Fprintf(&text, "ai.apiKey:   %s\n", maskKey(cfg.AI.APIKey))
			if cfg.AI.BaseURL != "" {
				fmt.Fprintf(&text, "ai.baseUrl:  %s\n", cfg.AI.BaseURL)
			}
			if cfg.AI.Model != "" {
				fmt.Fprintf(&text, "ai.model:    %s\n", cfg.AI.Model)
			}
			return f.SuccessText(text.String(), map[string]any{
				"storage": cfg.Storage,
				"ai": map[string]string{
					"provider": cfg.AI.Provider,
					"apiKey":   maskKey(cfg.AI.APIKey),
					"baseUrl":  cfg.AI.BaseURL,
					"model":    cfg.AI.Model,
				},
			})
		},
	}
}

func newConfigSetKeyCommand(rootOpts *RootOptions) *cobra.Command {
	var baseURL, modelName string
	cmd := &cobra.Command{
		Use:           "set-key <provider> <api-key>",
		Short:         "Store the AI provider and API key in the config file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			provider := args[0]
			if provider != "openai" && provider != "gemini" {
				return fail(f, ExitFailure, ErrCodeValidation,
					fmt.Sprintf("unknown provider %q (openai|gemini)", provider))
			}

			cfg, err := LoadConfig(rootOpts.ConfigPath)
			if err != nil {
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}
			cfg.AI.Provider = provider
			cfg.AI.APIKey = args[1]
			if baseURL != "" {
				cfg.AI.BaseURL = baseURL
			}
			if modelName != "" {
				cfg.AI.Model = modelName
			}
			if err := SaveConfig(rootOpts.ConfigPath, cfg); err != nil {
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}
			return f.SuccessText(
				fmt.Sprintf("Saved %s credentials\n", provider),
				map[string]string{"provider": provider})
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL (openai-compatible endpoints)")
	cmd.Flags().StringVar(&modelName, "model", "", "model name")
	return cmd
}

func newConfigTestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "test",
		Short:         "Verify the configured AI backend responds",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}

			if !app.Advisor.Configured() {
				return fail(f, ExitFailure, ErrCodeBackend,
					"no AI backend configured; set one with 'appsketch config set-key'")
			}
			if err := app.Advisor.TestConnection(cmd.Context()); err != nil {
				return fail(f, ExitFailure, ErrCodeBackend,
					fmt.Sprintf("backend %s did not respond: %v", app.Advisor.BackendName(), err))
			}
			return f.SuccessText(
				fmt.Sprintf("Backend %s responded\n", app.Advisor.BackendName()),
				map[string]string{"backend": app.Advisor.BackendName()})
		},
	}
}
