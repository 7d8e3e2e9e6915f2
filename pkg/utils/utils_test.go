package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsSuite struct {
	suite.Suite
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsSuite))
}

func (s *UtilsSuite) TestContainsErrorSubstringMatchesCaseInsensitive() {
	err := errors.New("429: Rate_Limit exceeded")
	s.True(ContainsErrorSubstring(err, "rate_limit"))
	s.False(ContainsErrorSubstring(err, "billing"))
}

func (s *UtilsSuite) TestContainsErrorSubstringUnwraps() {
	inner := errors.New("content_policy_violation")
	wrapped := fmt.Errorf("request failed: %w", inner)
	s.True(ContainsErrorSubstring(wrapped, "content_policy_violation"))
}

func (s *UtilsSuite) TestContainsErrorSubstringNilError() {
	s.False(ContainsErrorSubstring(nil, "anything"))
}

func (s *UtilsSuite) TestWrapIfNotNilAnnotatesCaller() {
	err := WrapIfNotNil(errors.New("boom"))
	s.Require().Error(err)
	s.Contains(err.Error(), "boom")
	s.Contains(err.Error(), "TestWrapIfNotNilAnnotatesCaller")
}

func (s *UtilsSuite) TestWrapIfNotNilNilStaysNil() {
	s.NoError(WrapIfNotNil(nil))
}

func (s *UtilsSuite) TestSaveTempAudioRoundTrip() {
	ctx := context.Background()
	data := []byte{0x52, 0x49, 0x46, 0x46}

	path, err := SaveTempAudio(ctx, data, ".wav")
	s.Require().NoError(err)
	s.True(strings.HasSuffix(path, ".wav"))

	stored, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal(data, stored)

	CleanupTempFiles(ctx, path)
	_, statErr := os.Stat(path)
	s.True(os.IsNotExist(statErr))
}

func (s *UtilsSuite) TestSaveTempAudioDefaultsExtension() {
	ctx := context.Background()
	path, err := SaveTempAudio(ctx, []byte{1}, "")
	s.Require().NoError(err)
	defer CleanupTempFiles(ctx, path)

	s.True(strings.HasSuffix(path, ".wav"))
}

func (s *UtilsSuite) TestCleanupTempFilesIgnoresMissing() {
	CleanupTempFiles(context.Background(), "", "/tmp/does-not-exist-12345.wav")
}

func (s *UtilsSuite) TestSafeFilenameStripsUnsafeCharacters() {
	s.Equal("a_b_c.wav", SafeFilename(`a/b\c.wav`))
	s.Equal("recording.mp3", SafeFilename("recording.mp3"))
}

func (s *UtilsSuite) TestSafeFilenameEmptyInputGetsPlaceholder() {
	s.True(strings.HasPrefix(SafeFilename("   "), "file_"))
}

func (s *UtilsSuite) TestFileExtension() {
	s.Equal(".wav", FileExtension("Recording.WAV"))
	s.Equal(".ogg", FileExtension("a.b.ogg"))
	s.Empty(FileExtension("noext"))
}

func (s *UtilsSuite) TestFormatFileSize() {
	s.Equal("0B", FormatFileSize(0))
	s.Equal("512.0B", FormatFileSize(512))
	s.Equal("1.5KB", FormatFileSize(1536))
	s.Equal("1.0MB", FormatFileSize(1024*1024))
}

func (s *UtilsSuite) TestEstimateProcessingTime() {
	s.InDelta(19.5, EstimateProcessingTime(5), 1e-9)
	s.InDelta(18.0, EstimateProcessingTime(0), 1e-9)
	s.InDelta(48.0, EstimateProcessingTime(100), 1e-9)
}

func (s *UtilsSuite) TestFormatDuration() {
	s.Equal("5.0s", FormatDuration(5))
	s.Equal("1m 30s", FormatDuration(90))
	s.Equal("1h 1m", FormatDuration(3660))
}
