package server

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. A .env file
// in the working directory is loaded first when present.
type Config struct {
	Host string `env:"HOST" env-default:"0.0.0.0"`
	Port int    `env:"PORT" env-default:"5000"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY" env-required:"true"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" env-default:""`

	// VisionProvider selects who analyzes generated images: openai, gemini
	// or bedrock. Transcription, text moderation and image generation always
	// go through OpenAI.
	VisionProvider string `env:"VISION_PROVIDER" env-default:"openai"`

	// RewriteProvider selects who enhances prompts: openai or ollama.
	RewriteProvider string `env:"REWRITE_PROVIDER" env-default:"openai"`

	TranscriptionModel string `env:"TRANSCRIPTION_MODEL" env-default:""`
	ModerationModel    string `env:"MODERATION_MODEL" env-default:""`
	VisionModel        string `env:"VISION_MODEL" env-default:""`
	ImageModel         string `env:"IMAGE_MODEL" env-default:""`

	TranscriptionTimeoutSec int `env:"TRANSCRIPTION_TIMEOUT_SEC" env-default:"60"`
	ModerationTimeoutSec    int `env:"MODERATION_TIMEOUT_SEC" env-default:"30"`
	GenerationTimeoutSec    int `env:"GENERATION_TIMEOUT_SEC" env-default:"120"`

	RecordSeconds    int   `env:"RECORD_SECONDS" env-default:"5"`
	MaxUploadBytes   int64 `env:"MAX_UPLOAD_BYTES" env-default:"26214400"`
	DisableRecording bool  `env:"DISABLE_RECORDING" env-default:"false"`
}

// LoadConfig reads configuration from a .env file (if any) and the
// environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	switch cfg.VisionProvider {
	case "openai", "gemini", "bedrock":
	default:
		return nil, fmt.Errorf("unknown VISION_PROVIDER %q", cfg.VisionProvider)
	}
	switch cfg.RewriteProvider {
	case "openai", "ollama":
	default:
		return nil, fmt.Errorf("unknown REWRITE_PROVIDER %q", cfg.RewriteProvider)
	}

	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) TranscriptionTimeout() time.Duration {
	return time.Duration(c.TranscriptionTimeoutSec) * time.Second
}

func (c *Config) ModerationTimeout() time.Duration {
	return time.Duration(c.ModerationTimeoutSec) * time.Second
}

func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.GenerationTimeoutSec) * time.Second
}
