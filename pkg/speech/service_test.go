package speech

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

type stubTranscription struct {
	text string
	err  error
}

func (g *stubTranscription) Generate(_ context.Context) (string, model.GenerationMetadata, error) {
	return g.text, model.GenerationMetadata{}, g.err
}

// recordingTranscriptionFactory captures the file path it was handed and the
// bytes at that path at call time, before the service cleans the file up.
type recordingTranscriptionFactory struct {
	text     string
	err      error
	filePath string
	fileData []byte
}

func (f *recordingTranscriptionFactory) factory(filePath string, _ model.AudioOptions) (model.TranscriptionGenerator, error) {
	f.filePath = filePath
	f.fileData, _ = os.ReadFile(filePath)
	return &stubTranscription{text: f.text, err: f.err}, nil
}

type SpeechServiceSuite struct {
	suite.Suite
}

func TestSpeechServiceSuite(t *testing.T) {
	suite.Run(t, new(SpeechServiceSuite))
}

func (s *SpeechServiceSuite) TestTranscribeRoundTripsAudioBytes() {
	factory := &recordingTranscriptionFactory{text: "a red bicycle"}
	svc := NewService(factory.factory, model.AudioOptions{})

	audio := EncodeWAV([]int16{1, 2, 3, 4})
	text, err := svc.Transcribe(context.Background(), audio, ".wav")

	s.Require().NoError(err)
	s.Equal("a red bicycle", text)
	s.Equal(audio, factory.fileData)
}

func (s *SpeechServiceSuite) TestTranscribeCleansUpTempFile() {
	factory := &recordingTranscriptionFactory{text: "hello"}
	svc := NewService(factory.factory, model.AudioOptions{})

	_, err := svc.Transcribe(context.Background(), []byte{1, 2, 3}, ".mp3")

	s.Require().NoError(err)
	s.Require().NotEmpty(factory.filePath)
	_, statErr := os.Stat(factory.filePath)
	s.True(os.IsNotExist(statErr))
}

func (s *SpeechServiceSuite) TestTranscribeTrimsWhitespace() {
	factory := &recordingTranscriptionFactory{text: "  spoken words \n"}
	svc := NewService(factory.factory, model.AudioOptions{})

	text, err := svc.Transcribe(context.Background(), []byte{1}, ".wav")

	s.Require().NoError(err)
	s.Equal("spoken words", text)
}

func (s *SpeechServiceSuite) TestTranscribeEmptyTranscriptReturnsErrNoSpeech() {
	factory := &recordingTranscriptionFactory{text: "   "}
	svc := NewService(factory.factory, model.AudioOptions{})

	_, err := svc.Transcribe(context.Background(), []byte{1}, ".wav")

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrNoSpeech))
}

func (s *SpeechServiceSuite) TestTranscribeRejectsUnsupportedExtension() {
	factory := &recordingTranscriptionFactory{text: "hello"}
	svc := NewService(factory.factory, model.AudioOptions{})

	_, err := svc.Transcribe(context.Background(), []byte{1}, ".txt")

	s.Require().Error(err)
	s.Contains(err.Error(), "unsupported audio format")
	s.Empty(factory.filePath)
}

func (s *SpeechServiceSuite) TestTranscribeRejectsEmptyAudio() {
	factory := &recordingTranscriptionFactory{text: "hello"}
	svc := NewService(factory.factory, model.AudioOptions{})

	_, err := svc.Transcribe(context.Background(), nil, ".wav")

	s.Require().Error(err)
	s.Empty(factory.filePath)
}

func (s *SpeechServiceSuite) TestValidateExtensionAcceptsUppercase() {
	s.NoError(ValidateExtension(".WAV"))
	s.NoError(ValidateExtension(".ogg"))
	s.Error(ValidateExtension(".flac"))
	s.Error(ValidateExtension(""))
}
