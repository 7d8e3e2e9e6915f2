package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

const (
	defaultAnalysisMaxTokens = 300
	analysisUserText         = "Please analyze this image for content moderation."
)

type imageAnalysisGenerator struct {
	systemPrompt string
	imageJPEG    []byte
	cfg          model.GeneratorConfig
}

func NewImageAnalysisGenerator(systemPrompt string, imageJPEG []byte, opts ...model.GeneratorOption) (model.ImageAnalysisGenerator, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, utils.WrapIfNotNil(errors.New("system prompt is required"))
	}
	if len(imageJPEG) == 0 {
		return nil, utils.WrapIfNotNil(errors.New("image data is required"))
	}

	return &imageAnalysisGenerator{
		systemPrompt: systemPrompt,
		imageJPEG:    imageJPEG,
		cfg:          model.ResolveGeneratorOpts(opts...),
	}, nil
}

func (g *imageAnalysisGenerator) Generate(ctx context.Context) (string, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(g.cfg, defaultVisionModelName)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	log.Infof("image_analysis_request model=%q image_bytes=%d", modelName, len(g.imageJPEG))

	client, err := newAPIClient(ctx, g.cfg)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	maxTokens := int32(defaultAnalysisMaxTokens)
	if g.cfg.MaxTokens != nil {
		maxTokens = int32(*g.cfg.MaxTokens)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(
			[]*genai.Part{
				genai.NewPartFromText(analysisUserText),
				genai.NewPartFromBytes(g.imageJPEG, "image/jpeg"),
			},
			genai.RoleUser,
		),
	}

	response, err := client.Models.GenerateContent(ctx, modelName, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   maxTokens,
	})
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	applyUsageMetadata(meta, response)

	return response.Text(), meta, nil
}
