package ollama

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	ollamasdk "github.com/rozoomcool/go-ollama-sdk"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

const (
	providerName = "ollama"

	defaultRewriteModelName = "llama3.1"
	defaultBaseURL          = "http://localhost:11434"

	rewriteSystemPrompt = "You are an expert at writing prompts for AI image generation. " +
		"Create detailed, artistic prompts that will produce high-quality images. Return only the prompt."
)

type promptRewriteGenerator struct {
	client *ollamasdk.OllamaClient
	prompt string
	cfg    model.GeneratorConfig
}

// NewPromptRewriteGenerator rewrites an image prompt through a locally running
// Ollama model. Useful when prompt enhancement should not spend hosted-API
// tokens.
func NewPromptRewriteGenerator(prompt string, opts ...model.GeneratorOption) (model.PromptRewriteGenerator, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, utils.WrapIfNotNil(errors.New("prompt is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL == "" {
		baseURL = strings.TrimSpace(os.Getenv("OLLAMA_BASE_URL"))
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &promptRewriteGenerator{
		client: ollamasdk.NewClient(baseURL),
		prompt: prompt,
		cfg:    cfg,
	}, nil
}

func (g *promptRewriteGenerator) Generate(ctx context.Context) (string, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveRewriteModelName(g.cfg)
	meta := model.GenerationMetadata{
		model.MetadataKeyProvider: providerName,
		model.MetadataKeyModel:    modelName,
	}
	defer func() {
		meta[model.MetadataKeyLatencyMs] = strconv.FormatInt(time.Since(start).Milliseconds(), 10)
	}()

	log := logging.NewLogger(ctx)
	log.Infof("prompt_rewrite_request model=%q prompt_length=%d", modelName, len(g.prompt))

	messages := []ollamasdk.ChatMessage{
		{
			Role:    "system",
			Content: rewriteSystemPrompt,
		},
		{
			Role: "user",
			Content: "Enhance this image prompt to be more detailed and artistic while keeping the core meaning. " +
				"Keep it under 200 words:\n\"" + g.prompt + "\"",
		},
	}

	text, err := g.client.Chat(modelName, messages)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	rewritten := strings.TrimSpace(text)
	if rewritten == "" {
		err = errors.New("prompt rewrite response is empty")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	return rewritten, meta, nil
}

func resolveRewriteModelName(cfg model.GeneratorConfig) string {
	if cfg.Model != nil {
		modelName := strings.TrimSpace(*cfg.Model)
		if modelName != "" {
			return modelName
		}
	}
	return defaultRewriteModelName
}
