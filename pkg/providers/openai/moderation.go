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

type textScreenGenerator struct {
	client *client
	text   string
	cfg    model.GeneratorConfig
}

func NewTextScreenGenerator(text string, opts ...model.GeneratorOption) (model.TextScreenGenerator, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.WrapIfNotNil(errors.New("text is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	c, err := newClient(cfg)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return &textScreenGenerator{client: c, text: text, cfg: cfg}, nil
}

func (g *textScreenGenerator) Generate(ctx context.Context) (model.TextScreenResult, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(g.cfg, defaultModerationModelName)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	log.Infof("moderation_request model=%q text_length=%d", modelName, len(g.text))

	response, err := g.client.apiClient.Moderations.New(ctx, openai.ModerationNewParams{
		Input: openai.ModerationNewParamsInputUnion{
			OfString: openai.String(g.text),
		},
		Model: openai.ModerationModel(modelName),
	})
	if err != nil {
		log.Errorf("error: %v", err)
		return model.TextScreenResult{}, meta, utils.WrapIfNotNil(err)
	}
	if response == nil || len(response.Results) == 0 {
		err = errors.New("moderations API returned no results")
		log.Errorf("error: %v", err)
		return model.TextScreenResult{}, meta, utils.WrapIfNotNil(err)
	}

	result := mapModerationResult(response.Results[0])
	log.Infof("moderation_completed flagged=%t categories=%d", result.Flagged, len(result.FlaggedCategories))
	return result, meta, nil
}

func mapModerationResult(result openai.Moderation) model.TextScreenResult {
	mapped := model.TextScreenResult{Flagged: result.Flagged}
	if !result.Flagged {
		return mapped
	}

	if result.Categories.Sexual {
		mapped.FlaggedCategories = append(mapped.FlaggedCategories, "sexual content")
	}
	if result.Categories.Violence {
		mapped.FlaggedCategories = append(mapped.FlaggedCategories, "violent content")
	}
	if result.Categories.Hate {
		mapped.FlaggedCategories = append(mapped.FlaggedCategories, "hate speech")
	}
	if result.Categories.Harassment {
		mapped.FlaggedCategories = append(mapped.FlaggedCategories, "harassment")
	}
	if result.Categories.SelfHarm {
		mapped.FlaggedCategories = append(mapped.FlaggedCategories, "self-harm content")
	}

	scores := []float64{
		result.CategoryScores.Sexual,
		result.CategoryScores.Violence,
		result.CategoryScores.Hate,
		result.CategoryScores.Harassment,
		result.CategoryScores.SelfHarm,
	}
	for _, score := range scores {
		if score > mapped.MaxScore {
			mapped.MaxScore = score
		}
	}

	return mapped
}
