package model

import "context"

// These are factory methods each provider should implement to create
// generators for the pipeline stages it supports.

// NewTranscriptionGeneratorFunc creates a generator that transcribes the audio
// file at filePath into plain text.
type NewTranscriptionGeneratorFunc func(filePath string, opts AudioOptions) (TranscriptionGenerator, error)

// NewTextScreenGeneratorFunc creates a generator that screens text against the
// provider's hosted moderation endpoint.
type NewTextScreenGeneratorFunc func(text string, opts ...GeneratorOption) (TextScreenGenerator, error)

// NewImageAnalysisGeneratorFunc creates a generator that sends a JPEG image to
// a vision-capable chat model together with a system instruction and returns
// the raw model output. Parsing the output is the caller's concern.
type NewImageAnalysisGeneratorFunc func(systemPrompt string, imageJPEG []byte, opts ...GeneratorOption) (ImageAnalysisGenerator, error)

// NewImageGeneratorFunc creates a generator that renders a single image for
// the prompt at the requested size and quality.
type NewImageGeneratorFunc func(prompt string, size ImageSize, quality ImageQuality, opts ...GeneratorOption) (ImageGenerator, error)

// NewPromptRewriteGeneratorFunc creates a generator that rewrites an image
// prompt into a more detailed one via a hosted chat model.
type NewPromptRewriteGeneratorFunc func(prompt string, opts ...GeneratorOption) (PromptRewriteGenerator, error)

type TranscriptionGenerator interface {
	Generate(ctx context.Context) (string, GenerationMetadata, error)
}

type TextScreenGenerator interface {
	Generate(ctx context.Context) (TextScreenResult, GenerationMetadata, error)
}

type ImageAnalysisGenerator interface {
	Generate(ctx context.Context) (string, GenerationMetadata, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context) (ImageData, GenerationMetadata, error)
}

type PromptRewriteGenerator interface {
	Generate(ctx context.Context) (string, GenerationMetadata, error)
}

type GenerationMetadata map[string]string

const (
	MetadataKeyProvider     = "provider"
	MetadataKeyModel        = "model"
	MetadataKeyLatencyMs    = "latency_ms"
	MetadataKeyInputTokens  = "input_tokens"
	MetadataKeyOutputTokens = "output_tokens"
	MetadataKeyTotalTokens  = "total_tokens"
)

type GeneratorOption interface {
	apply(*GeneratorConfig)
}

type generatorOptionFunc func(*GeneratorConfig)

func (f generatorOptionFunc) apply(cfg *GeneratorConfig) {
	f(cfg)
}

type GeneratorConfig struct {
	URL         string
	AuthToken   string
	Model       *string
	Temperature *float64
	MaxTokens   *int
}

func ResolveGeneratorOpts(opts ...GeneratorOption) GeneratorConfig {
	cfg := GeneratorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}

func WithURL(value string) GeneratorOption {
	return generatorOptionFunc(func(cfg *GeneratorConfig) {
		cfg.URL = value
	})
}

func WithAuthToken(value string) GeneratorOption {
	return generatorOptionFunc(func(cfg *GeneratorConfig) {
		cfg.AuthToken = value
	})
}

func WithModel(value string) GeneratorOption {
	return generatorOptionFunc(func(cfg *GeneratorConfig) {
		cfg.Model = &value
	})
}

func WithTemperature(value float64) GeneratorOption {
	return generatorOptionFunc(func(cfg *GeneratorConfig) {
		cfg.Temperature = &value
	})
}

func WithMaxTokens(value int) GeneratorOption {
	return generatorOptionFunc(func(cfg *GeneratorConfig) {
		cfg.MaxTokens = &value
	})
}
