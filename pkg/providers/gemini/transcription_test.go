package gemini

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

type TranscriptionSuite struct {
	suite.Suite
}

func TestTranscriptionSuite(t *testing.T) {
	suite.Run(t, new(TranscriptionSuite))
}

func (s *TranscriptionSuite) TestNewTranscriptionGeneratorEmptyPathReturnsError() {
	generator, err := NewTranscriptionGenerator("   ", model.AudioOptions{})
	s.Require().Error(err)
	s.Nil(generator)
}

func (s *TranscriptionSuite) TestResolveModelNameUsesDefault() {
	s.Equal("gemini-2.5-flash", resolveModelName(model.GeneratorConfig{}, defaultTranscriptionModelName))
}

func (s *TranscriptionSuite) TestResolveAudioMIMETypeCommonMappings() {
	for extension, want := range map[string]string{
		"speech.wav": "audio/wav",
		"speech.mp3": "audio/mpeg",
		"speech.m4a": "audio/mp4",
		"speech.ogg": "audio/ogg",
	} {
		mimeType, err := resolveAudioMIMEType(extension)
		s.Require().NoError(err)
		s.Equal(want, mimeType)
	}
}

func (s *TranscriptionSuite) TestResolveAudioMIMETypeUnsupportedExtension() {
	_, err := resolveAudioMIMEType("notes.txt")
	s.Require().Error(err)
}
