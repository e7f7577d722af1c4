package advisor

import "context"

// Request is one completion request to a language-model backend.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	// JSONResponse asks the backend to constrain output to a JSON object.
	JSONResponse bool
}

// Backend is a language-model completion provider.
type Backend interface {
	// Complete returns the raw completion text for the request.
	Complete(ctx context.Context, req Request) (string, error)
	// Name identifies the provider for logs and the config surface.
	Name() string
}

// BackendConfig selects and parameterizes a backend.
type BackendConfig struct {
	Provider string // "openai", "gemini", or "" for none
	APIKey   string
	BaseURL  string // openai-compatible endpoints only
	Model    string
}

// NewBackend builds the configured backend, or nil when the config names
// no provider or carries no key. A nil backend means heuristic-only mode.
func NewBackend(cfg BackendConfig) (Backend, error) {
	if cfg.Provider == "" || cfg.APIKey == "" {
		return nil, nil
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAIBackend(OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case "gemini":
		return NewGeminiBackend(cfg.APIKey, cfg.Model)
	default:
		return nil, &UnknownProviderError{Provider: cfg.Provider}
	}
}

// UnknownProviderError reports a provider name the factory does not know.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return "unknown AI provider: " + e.Provider
}
