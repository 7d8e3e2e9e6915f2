package pipeline

import (
	"context"
	"fmt"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/gallery"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/imagegen"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/moderation"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/speech"
)

// Result is the outcome of a full prompt-to-gallery run. Exactly one of the
// three states holds: Blocked (text moderation refused the prompt), a failed
// generation (Error set), or a stored Record.
type Result struct {
	Blocked     bool                  `json:"blocked"`
	TextVerdict model.TextVerdict     `json:"text_verdict"`
	Error       string                `json:"error,omitempty"`
	Record      *model.GeneratedImage `json:"record,omitempty"`
}

// Service ties the pipeline stages together: transcription, text moderation,
// image generation, download, image moderation and the gallery. Both the HTTP
// handlers and the MCP tools drive it.
type Service struct {
	Speech     *speech.Service
	Moderation *moderation.Service
	Images     *imagegen.Service
	Gallery    *gallery.Store
	Downloader Downloader
}

// GenerateFromPrompt runs text moderation, image generation, image
// moderation and gallery storage for one prompt, recording into the
// service's own gallery. It never returns an error: every failure mode lands
// in the Result. A blocked prompt stops the run before any generation call is
// made.
func (s *Service) GenerateFromPrompt(ctx context.Context, prompt string, size model.ImageSize, quality model.ImageQuality) Result {
	return s.GenerateInto(ctx, s.Gallery, prompt, size, quality)
}

// GenerateInto is GenerateFromPrompt recording into an explicit gallery
// store, for callers that hold per-session stores.
func (s *Service) GenerateInto(ctx context.Context, store *gallery.Store, prompt string, size model.ImageSize, quality model.ImageQuality) Result {
	log := logging.NewLogger(ctx)

	verdict := s.Moderation.ModerateText(ctx, prompt)
	if !verdict.IsSafe {
		log.Warnf("prompt blocked: %s", verdict.Reason)
		return Result{Blocked: true, TextVerdict: verdict}
	}

	outcome := s.Images.Generate(ctx, prompt, size, quality)
	if !outcome.Success {
		return Result{TextVerdict: verdict, Error: outcome.Error}
	}

	data, err := s.Downloader.Download(ctx, outcome.URL)
	if err != nil {
		log.Errorf("generated image download failed: %v", err)
		return Result{TextVerdict: verdict, Error: fmt.Sprintf("Could not download generated image: %v", err)}
	}

	img, err := moderation.DecodeImage(data)
	if err != nil {
		return Result{TextVerdict: verdict, Error: fmt.Sprintf("Generated image is not decodable: %v", err)}
	}

	imageVerdict := s.Moderation.ModerateImage(ctx, img)

	record := store.Append(model.GeneratedImage{
		Prompt:        prompt,
		RevisedPrompt: outcome.RevisedPrompt,
		URL:           outcome.URL,
		Image:         data,
		Moderation:    imageVerdict,
	})

	log.Infof("image stored in gallery, id=%s rating=%s warning=%t",
		record.ID, record.Moderation.ContentRating, record.Moderation.RequiresWarning)
	return Result{TextVerdict: verdict, Record: &record}
}

// GenerateFromAudio transcribes uploaded audio and feeds the transcript into
// GenerateFromPrompt. Transcription failures are returned as errors since no
// moderation verdict exists yet.
func (s *Service) GenerateFromAudio(ctx context.Context, audio []byte, extension string, size model.ImageSize, quality model.ImageQuality) (string, Result, error) {
	text, err := s.Speech.Transcribe(ctx, audio, extension)
	if err != nil {
		return "", Result{}, err
	}
	return text, s.GenerateFromPrompt(ctx, text, size, quality), nil
}
