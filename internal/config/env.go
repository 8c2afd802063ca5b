package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Env holds credentials read from the environment. GEMINI_API_KEY is the only
// hard requirement for a pipeline run; the search provider keys degrade
// gracefully when absent (Unsplash runs unauthenticated at a lower rate,
// Tavily-backed searches return empty results).
type Env struct {
	GeminiAPIKey      string `envconfig:"GEMINI_API_KEY"`
	UnsplashAccessKey string `envconfig:"UNSPLASH_ACCESS_KEY"`
	TavilyAPIKey      string `envconfig:"TAVILY_API_KEY"`
}

// LoadEnv reads the credential variables from the process environment.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}
	return &env, nil
}
