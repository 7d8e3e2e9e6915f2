package openai

import (
	"context"
	"encoding/base64"
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
	defaultAnalysisMaxTokens = 300
	analysisUserText         = "Please analyze this image for content moderation."
)

type imageAnalysisGenerator struct {
	client       *client
	systemPrompt string
	imageJPEG    []byte
	cfg          model.GeneratorConfig
}

// NewImageAnalysisGenerator sends a JPEG image to a vision-capable chat model
// as a base64 data URI with the given system instruction, requesting a JSON
// object response. The raw response text is returned unparsed.
func NewImageAnalysisGenerator(systemPrompt string, imageJPEG []byte, opts ...model.GeneratorOption) (model.ImageAnalysisGenerator, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, utils.WrapIfNotNil(errors.New("system prompt is required"))
	}
	if len(imageJPEG) == 0 {
		return nil, utils.WrapIfNotNil(errors.New("image data is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	c, err := newClient(cfg)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return &imageAnalysisGenerator{
		client:       c,
		systemPrompt: systemPrompt,
		imageJPEG:    imageJPEG,
		cfg:          cfg,
	}, nil
}

func (g *imageAnalysisGenerator) Generate(ctx context.Context) (string, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(g.cfg, defaultVisionModelName)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	log.Infof("image_analysis_request model=%q image_bytes=%d", modelName, len(g.imageJPEG))

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(g.imageJPEG)

	maxTokens := defaultAnalysisMaxTokens
	if g.cfg.MaxTokens != nil {
		maxTokens = *g.cfg.MaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(g.systemPrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(analysisUserText),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURI,
				}),
			}),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
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

	return response.Choices[0].Message.Content, meta, nil
}
