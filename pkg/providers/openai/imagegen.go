package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

type imageGenerator struct {
	client  *client
	prompt  string
	size    model.ImageSize
	quality model.ImageQuality
	cfg     model.GeneratorConfig
}

// NewImageGenerator requests exactly one rendered image for the prompt. The
// caller is expected to have validated and truncated the prompt already.
func NewImageGenerator(prompt string, size model.ImageSize, quality model.ImageQuality, opts ...model.GeneratorOption) (model.ImageGenerator, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, utils.WrapIfNotNil(errors.New("prompt is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	c, err := newClient(cfg)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return &imageGenerator{
		client:  c,
		prompt:  prompt,
		size:    size,
		quality: quality,
		cfg:     cfg,
	}, nil
}

func (g *imageGenerator) Generate(ctx context.Context) (model.ImageData, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(g.cfg, defaultImageModelName)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	log.Infof("image_generation_request model=%q size=%s quality=%s prompt_length=%d",
		modelName, g.size, g.quality, len(g.prompt))

	response, err := g.client.apiClient.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:   openai.ImageModel(modelName),
		Prompt:  g.prompt,
		N:       openai.Int(1),
		Size:    mapImageSize(g.size),
		Quality: mapImageQuality(g.quality),
	})
	if err != nil {
		log.Errorf("error: %v", err)
		return model.ImageData{}, meta, utils.WrapIfNotNil(err)
	}
	if response == nil || len(response.Data) == 0 {
		err = errors.New("images API returned no data")
		log.Errorf("error: %v", err)
		return model.ImageData{}, meta, utils.WrapIfNotNil(err)
	}

	image := response.Data[0]
	if image.URL == "" {
		err = errors.New("images API returned no image URL")
		log.Errorf("error: %v", err)
		return model.ImageData{}, meta, utils.WrapIfNotNil(err)
	}

	log.Infof("image_generation_completed revised=%t", image.RevisedPrompt != "")
	return model.ImageData{
		URL:           image.URL,
		RevisedPrompt: image.RevisedPrompt,
	}, meta, nil
}

func mapImageSize(size model.ImageSize) openai.ImageGenerateParamsSize {
	switch size {
	case model.SizeSmall:
		return openai.ImageGenerateParamsSize256x256
	case model.SizeMedium:
		return openai.ImageGenerateParamsSize512x512
	case model.SizeLarge:
		return openai.ImageGenerateParamsSize1024x1024
	default:
		return openai.ImageGenerateParamsSize1024x1024
	}
}

func mapImageQuality(quality model.ImageQuality) openai.ImageGenerateParamsQuality {
	switch quality {
	case model.QualityHD:
		return openai.ImageGenerateParamsQualityHD
	default:
		return openai.ImageGenerateParamsQualityStandard
	}
}
