package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/gallery"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/imagegen"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/moderation"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/pipeline"
	providerbedrock "github.com/sohansaha616/Speech-to-image-generator/pkg/providers/bedrock"
	providergemini "github.com/sohansaha616/Speech-to-image-generator/pkg/providers/gemini"
	providerollama "github.com/sohansaha616/Speech-to-image-generator/pkg/providers/ollama"
	provideropenai "github.com/sohansaha616/Speech-to-image-generator/pkg/providers/openai"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/speech"
)

// Server owns the assembled pipeline, per-session galleries and the optional
// microphone recorder.
type Server struct {
	cfg      *Config
	pipe     *pipeline.Service
	sessions *gallery.Manager
	recorder *speech.Recorder
}

// New wires the configured providers into a pipeline and prepares the HTTP
// surface around it.
func New(ctx context.Context, cfg *Config) (*Server, error) {
	log := logging.NewLogger(ctx)

	var recorder *speech.Recorder
	if !cfg.DisableRecording {
		var err error
		recorder, err = speech.NewRecorder(ctx)
		if err != nil {
			log.Warnf("audio capture unavailable: %v", err)
			recorder = nil
		}
	}

	sessions := gallery.NewManager()
	pipe := NewPipeline(cfg)
	pipe.Gallery = sessions.Session(gallery.DefaultSession)

	return &Server{
		cfg:      cfg,
		pipe:     pipe,
		sessions: sessions,
		recorder: recorder,
	}, nil
}

// NewPipeline assembles the provider factories, services and gallery for one
// session. The MCP entrypoint uses it without the HTTP layer.
func NewPipeline(cfg *Config) *pipeline.Service {
	opts := []model.GeneratorOption{
		model.WithAuthToken(cfg.OpenAIAPIKey),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, model.WithURL(cfg.OpenAIBaseURL))
	}

	newTextScreen := withScreenModel(provideropenai.NewTextScreenGenerator, cfg.ModerationModel)
	newVision := withVisionModel(selectVisionFactory(cfg.VisionProvider), cfg.VisionModel)
	moderationSvc := moderation.NewService(newTextScreen, newVision, opts...)

	newImage := withImageModel(provideropenai.NewImageGenerator, cfg.ImageModel)
	imagesSvc := imagegen.NewService(newImage, selectRewriteFactory(cfg.RewriteProvider), opts...)

	speechSvc := speech.NewService(provideropenai.NewTranscriptionGenerator, model.AudioOptions{
		URL:       cfg.OpenAIBaseURL,
		AuthToken: cfg.OpenAIAPIKey,
		Model:     cfg.TranscriptionModel,
	})

	return &pipeline.Service{
		Speech:     speechSvc,
		Moderation: moderationSvc,
		Images:     imagesSvc,
		Gallery:    gallery.NewStore(),
		Downloader: pipeline.NewHTTPDownloader(&http.Client{Timeout: 60 * time.Second}),
	}
}

// Run starts the HTTP listener and blocks until it fails or the context is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	router := s.buildRouter()
	httpServer := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	logging.NewLogger(ctx).Infof("listening on %s", s.cfg.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// Close releases the recorder, if one was opened.
func (s *Server) Close() {
	if s.recorder != nil {
		_ = s.recorder.Close()
	}
}

// The with*Model helpers decorate a provider factory with a per-stage model
// override so stages sharing the base options can still run distinct models.

func withScreenModel(inner model.NewTextScreenGeneratorFunc, modelName string) model.NewTextScreenGeneratorFunc {
	if modelName == "" {
		return inner
	}
	return func(text string, opts ...model.GeneratorOption) (model.TextScreenGenerator, error) {
		return inner(text, append(opts, model.WithModel(modelName))...)
	}
}

func withVisionModel(inner model.NewImageAnalysisGeneratorFunc, modelName string) model.NewImageAnalysisGeneratorFunc {
	if modelName == "" {
		return inner
	}
	return func(systemPrompt string, imageJPEG []byte, opts ...model.GeneratorOption) (model.ImageAnalysisGenerator, error) {
		return inner(systemPrompt, imageJPEG, append(opts, model.WithModel(modelName))...)
	}
}

func withImageModel(inner model.NewImageGeneratorFunc, modelName string) model.NewImageGeneratorFunc {
	if modelName == "" {
		return inner
	}
	return func(prompt string, size model.ImageSize, quality model.ImageQuality, opts ...model.GeneratorOption) (model.ImageGenerator, error) {
		return inner(prompt, size, quality, append(opts, model.WithModel(modelName))...)
	}
}

func selectVisionFactory(provider string) model.NewImageAnalysisGeneratorFunc {
	switch provider {
	case "gemini":
		return providergemini.NewImageAnalysisGenerator
	case "bedrock":
		return providerbedrock.NewImageAnalysisGenerator
	default:
		return provideropenai.NewImageAnalysisGenerator
	}
}

func selectRewriteFactory(provider string) model.NewPromptRewriteGeneratorFunc {
	switch provider {
	case "ollama":
		return providerollama.NewPromptRewriteGenerator
	default:
		return provideropenai.NewPromptRewriteGenerator
	}
}
