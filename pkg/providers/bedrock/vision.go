package bedrock

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

const (
	defaultAnalysisMaxTokens = 300
	analysisUserText         = "Please analyze this image for content moderation. Respond with JSON only."
)

type imageAnalysisGenerator struct {
	systemPrompt string
	imageJPEG    []byte
	cfg          model.GeneratorConfig
}

// NewImageAnalysisGenerator analyzes a JPEG image through the Bedrock
// Converse API using the given system instruction.
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

	client, err := newClient(ctx, g.cfg)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	maxTokens := int32(defaultAnalysisMaxTokens)
	if g.cfg.MaxTokens != nil {
		maxTokens = int32(*g.cfg.MaxTokens)
	}
	inference := &bedrocktypes.InferenceConfiguration{
		MaxTokens: aws.Int32(maxTokens),
	}
	if g.cfg.Temperature != nil {
		inference.Temperature = aws.Float32(float32(*g.cfg.Temperature))
	}

	output, err := client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(modelName),
		System: []bedrocktypes.SystemContentBlock{
			&bedrocktypes.SystemContentBlockMemberText{Value: g.systemPrompt},
		},
		Messages: []bedrocktypes.Message{
			{
				Role: bedrocktypes.ConversationRoleUser,
				Content: []bedrocktypes.ContentBlock{
					&bedrocktypes.ContentBlockMemberText{Value: analysisUserText},
					&bedrocktypes.ContentBlockMemberImage{
						Value: bedrocktypes.ImageBlock{
							Format: bedrocktypes.ImageFormatJpeg,
							Source: &bedrocktypes.ImageSourceMemberBytes{Value: g.imageJPEG},
						},
					},
				},
			},
		},
		InferenceConfig: inference,
	})
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	applyConverseMetadata(meta, output)

	message, err := extractOutputMessage(output.Output)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	text := extractMessageText(message)
	if strings.TrimSpace(text) == "" {
		err = errors.New("converse response contains no text")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	return text, meta, nil
}

func extractOutputMessage(output bedrocktypes.ConverseOutput) (bedrocktypes.Message, error) {
	messageOutput, ok := output.(*bedrocktypes.ConverseOutputMemberMessage)
	if !ok || messageOutput == nil {
		return bedrocktypes.Message{}, errors.New("converse output is not a message")
	}
	return messageOutput.Value, nil
}

func extractMessageText(message bedrocktypes.Message) string {
	builder := strings.Builder{}
	for _, block := range message.Content {
		textBlock, ok := block.(*bedrocktypes.ContentBlockMemberText)
		if !ok {
			continue
		}
		builder.WriteString(textBlock.Value)
	}
	return builder.String()
}

func applyConverseMetadata(meta model.GenerationMetadata, output *bedrockruntime.ConverseOutput) {
	if meta == nil || output == nil || output.Usage == nil {
		return
	}

	meta[model.MetadataKeyInputTokens] = strconv.FormatInt(int64(aws.ToInt32(output.Usage.InputTokens)), 10)
	meta[model.MetadataKeyOutputTokens] = strconv.FormatInt(int64(aws.ToInt32(output.Usage.OutputTokens)), 10)
	meta[model.MetadataKeyTotalTokens] = strconv.FormatInt(int64(aws.ToInt32(output.Usage.TotalTokens)), 10)
}
