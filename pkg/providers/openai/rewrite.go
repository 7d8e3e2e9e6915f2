package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

const (
	defaultRewriteMaxTokens = 200

	rewriteSystemPrompt = "You are an expert at writing prompts for AI image generation. " +
		"Create detailed, artistic prompts that will produce high-quality images."
)

type promptRewriteGenerator struct {
	client *client
	prompt string
	cfg    model.GeneratorConfig
}

func NewPromptRewriteGenerator(prompt string, opts ...model.GeneratorOption) (model.PromptRewriteGenerator, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, utils.WrapIfNotNil(errors.New("prompt is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	c, err := newClient(cfg)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return &promptRewriteGenerator{client: c, prompt: prompt, cfg: cfg}, nil
}

func (g *promptRewriteGenerator) Generate(ctx context.Context) (string, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(g.cfg, defaultRewriteModelName)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	log.Infof("prompt_rewrite_request model=%q prompt_length=%d", modelName, len(g.prompt))

	maxTokens := defaultRewriteMaxTokens
	if g.cfg.MaxTokens != nil {
		maxTokens = *g.cfg.MaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(rewriteSystemPrompt),
			openai.UserMessage(buildRewriteRequest(g.prompt)),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	}
	if g.cfg.Temperature != nil {
		params.Temperature = openai.Float(*g.cfg.Temperature)
	}

	response, err := g.client.apiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	if response == nil || len(response.Choices) == 0 {
		err = errors.New("chat completions API returned no choices")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	applyCompletionUsageMetadata(meta, response.Usage)

	rewritten := strings.TrimSpace(response.Choices[0].Message.Content)
	if rewritten == "" {
		err = errors.New("prompt rewrite response is empty")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	return rewritten, meta, nil
}

func buildRewriteRequest(prompt string) string {
	return "Enhance this image prompt to be more detailed and artistic while keeping the core meaning:\n" +
		"\"" + prompt + "\"\n\n" +
		"Add artistic style, lighting, composition details but keep it under 200 words.\n" +
		"Make it suitable for image generation."
}
