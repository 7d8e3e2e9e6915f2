package speech

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

// Service converts audio into text via a hosted transcription model.
type Service struct {
	newTranscription model.NewTranscriptionGeneratorFunc
	audioOpts        model.AudioOptions
}

func NewService(newTranscription model.NewTranscriptionGeneratorFunc, audioOpts model.AudioOptions) *Service {
	return &Service{
		newTranscription: newTranscription,
		audioOpts:        audioOpts,
	}
}

// Transcribe writes the audio bytes to a temporary file, runs them through
// the transcription model and returns the text. The temporary file is removed
// before returning. An empty transcript yields ErrNoSpeech.
func (s *Service) Transcribe(ctx context.Context, audio []byte, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	if len(audio) == 0 {
		return "", errors.New("audio data is empty")
	}

	filePath, err := utils.SaveTempAudio(ctx, audio, extension)
	if err != nil {
		return "", err
	}
	defer utils.CleanupTempFiles(ctx, filePath)

	return s.TranscribeFile(ctx, filePath)
}

// TranscribeFile transcribes an audio file already on disk. The caller keeps
// ownership of the file.
func (s *Service) TranscribeFile(ctx context.Context, filePath string) (string, error) {
	log := logging.NewLogger(ctx)
	log.Infof("starting speech-to-text conversion for %q", filePath)

	generator, err := s.newTranscription(filePath, s.audioOpts)
	if err != nil {
		return "", err
	}

	text, metadata, err := generator.Generate(ctx)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", model.ErrNoSpeech
	}

	log.Infof("speech-to-text completed, %d characters, latency=%sms", len(text), metadata[model.MetadataKeyLatencyMs])
	return text, nil
}

// ValidateExtension checks an upload's extension against the supported
// container formats.
func ValidateExtension(extension string) error {
	ext := strings.ToLower(extension)
	if slices.Contains(model.SupportedAudioExtensions, ext) {
		return nil
	}
	return fmt.Errorf("unsupported audio format %q, supported: %s",
		extension, strings.Join(model.SupportedAudioExtensions, ", "))
}
