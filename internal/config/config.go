// Package config loads project-level settings for the draftsmith CLI.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/draftsmith/internal/article"
)

// ProjectConfig holds project-level settings loaded from draftsmith.yml.
// Everything is optional; flags override file values, and the pipeline
// applies its own defaults for anything still unset.
type ProjectConfig struct {
	// Model settings for the OpenAI-backed provider. The API key is never
	// read from the file; it comes from OPENAI_API_KEY.
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"baseURL,omitempty"`

	// Pipeline policy.
	WordCountGoal      int `yaml:"wordCountGoal,omitempty"`
	RetryBudget        int `yaml:"retryBudget,omitempty"`
	DraftConcurrency   int `yaml:"draftConcurrency,omitempty"`
	VoiceToneThreshold int `yaml:"voiceToneThreshold,omitempty"`

	// Client context reused across runs.
	ClientProfile []string            `yaml:"clientProfile,omitempty"`
	Voice         *article.BrandVoice `yaml:"voice,omitempty"`

	Verbose bool `yaml:"verbose,omitempty"`
}

// Load attempts to read draftsmith.yml or draftsmith.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"draftsmith.yml", "draftsmith.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
