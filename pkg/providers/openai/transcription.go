package openai

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

type transcriptionGenerator struct {
	client   *client
	filePath string
	opts     model.AudioOptions
}

func NewTranscriptionGenerator(filePath string, opts model.AudioOptions) (model.TranscriptionGenerator, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, utils.WrapIfNotNil(errors.New("file path is required"))
	}

	c, err := newClient(transcriptionConfigFromOptions(opts))
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	return &transcriptionGenerator{
		client:   c,
		filePath: filePath,
		opts:     opts,
	}, nil
}

// Generate transcribes the audio file. An empty transcript is returned as an
// empty string with a nil error; deciding what "no speech" means is left to
// the caller.
func (g *transcriptionGenerator) Generate(ctx context.Context) (string, model.GenerationMetadata, error) {
	start := time.Now()
	meta := initMetadata(resolveTranscriptionModelName(g.opts))
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	log.Infof("transcription_request model=%q file=%q", resolveTranscriptionModelName(g.opts), g.filePath)

	file, err := os.Open(g.filePath)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	defer func() {
		_ = file.Close()
	}()

	params := openai.AudioTranscriptionNewParams{
		File:           file,
		Model:          openai.AudioModel(resolveTranscriptionModelName(g.opts)),
		ResponseFormat: openai.AudioResponseFormatJSON,
	}
	if prompt := strings.TrimSpace(g.opts.Prompt); prompt != "" {
		params.Prompt = param.NewOpt(prompt)
	}

	response, err := g.client.apiClient.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	if response == nil {
		err = errors.New("audio transcriptions API returned nil response")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	transcript := strings.TrimSpace(response.Text)
	log.Infof("transcription_completed length=%d", len(transcript))
	return transcript, meta, nil
}

func resolveTranscriptionModelName(opts model.AudioOptions) string {
	if modelName := strings.TrimSpace(opts.Model); modelName != "" {
		return modelName
	}
	return defaultTranscriptionModelName
}

func transcriptionConfigFromOptions(opts model.AudioOptions) model.GeneratorConfig {
	cfg := model.GeneratorConfig{
		URL:       opts.URL,
		AuthToken: opts.AuthToken,
	}

	if modelName := strings.TrimSpace(opts.Model); modelName != "" {
		cfg.Model = &modelName
	}

	return cfg
}
