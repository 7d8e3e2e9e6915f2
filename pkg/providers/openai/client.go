package openai

import (
	"strconv"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

const (
	providerName = "openai"

	defaultTranscriptionModelName = "whisper-1"
	defaultModerationModelName    = "omni-moderation-latest"
	defaultVisionModelName        = "gpt-4o"
	defaultImageModelName         = "dall-e-3"
	defaultRewriteModelName       = "gpt-4o"
)

type client struct {
	apiClient openai.Client
}

func newClient(cfg model.GeneratorConfig) (*client, error) {
	requestOpts := make([]option.RequestOption, 0, 2)
	if cfg.URL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.URL))
	}
	if cfg.AuthToken != "" {
		requestOpts = append(requestOpts, option.WithAPIKey(cfg.AuthToken))
	}

	apiClient := openai.NewClient(requestOpts...)
	return &client{apiClient: apiClient}, nil
}

func resolveModelName(cfg model.GeneratorConfig, fallback string) string {
	if cfg.Model != nil {
		modelName := strings.TrimSpace(*cfg.Model)
		if modelName != "" {
			return modelName
		}
	}
	return fallback
}

func initMetadata(modelName string) model.GenerationMetadata {
	if strings.TrimSpace(modelName) == "" {
		modelName = "unknown"
	}

	return model.GenerationMetadata{
		model.MetadataKeyProvider: providerName,
		model.MetadataKeyModel:    modelName,
	}
}

func setLatencyMetadata(meta model.GenerationMetadata, start time.Time) {
	if meta == nil {
		return
	}
	meta[model.MetadataKeyLatencyMs] = strconv.FormatInt(time.Since(start).Milliseconds(), 10)
}

func applyCompletionUsageMetadata(meta model.GenerationMetadata, usage openai.CompletionUsage) {
	if meta == nil {
		return
	}

	meta[model.MetadataKeyInputTokens] = strconv.FormatInt(usage.PromptTokens, 10)
	meta[model.MetadataKeyOutputTokens] = strconv.FormatInt(usage.CompletionTokens, 10)
	meta[model.MetadataKeyTotalTokens] = strconv.FormatInt(usage.TotalTokens, 10)
}
