package config

import "os"

// AIModels defines which models to use for different tasks
type AIModels struct {
	// Answer is for Q&A answering with self-assessment (needs to be fast)
	Answer string `json:"answer"`

	// Practice is for practice item generation (bulk, quality over speed)
	Practice string `json:"practice"`

	// Summary is for post-session summaries (not blocking)
	Summary string `json:"summary"`

	// Nudge is for short nudge copy (cheap and fast)
	Nudge string `json:"nudge"`
}

// AIConfig holds all AI-related configuration for the OpenAI-compatible API
type AIConfig struct {
	APIKey    string   `json:"-"` // Never serialize
	BaseURL   string   `json:"baseUrl"`
	Models    AIModels `json:"models"`
	TimeoutMS int      `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"), // empty means api.openai.com
		Models: AIModels{
			Answer:   getEnvOrDefault("AI_MODEL_ANSWER", "gpt-4o-mini"),
			Practice: getEnvOrDefault("AI_MODEL_PRACTICE", "gpt-4o"),
			Summary:  getEnvOrDefault("AI_MODEL_SUMMARY", "gpt-4o-mini"),
			Nudge:    getEnvOrDefault("AI_MODEL_NUDGE", "gpt-4o-mini"),
		},
		TimeoutMS: 15000,
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
