package imagegen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/suite"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

type stubImageGenerator struct {
	data model.ImageData
	err  error
}

func (g *stubImageGenerator) Generate(_ context.Context) (model.ImageData, model.GenerationMetadata, error) {
	return g.data, model.GenerationMetadata{}, g.err
}

type stubRewriteGenerator struct {
	text string
	err  error
}

func (g *stubRewriteGenerator) Generate(_ context.Context) (string, model.GenerationMetadata, error) {
	return g.text, model.GenerationMetadata{}, g.err
}

// countingImageFactory records how many times a generator was built and what
// prompt it received.
type countingImageFactory struct {
	calls      int
	lastPrompt string
	data       model.ImageData
	err        error
}

func (f *countingImageFactory) factory(prompt string, _ model.ImageSize, _ model.ImageQuality, _ ...model.GeneratorOption) (model.ImageGenerator, error) {
	f.calls++
	f.lastPrompt = prompt
	return &stubImageGenerator{data: f.data, err: f.err}, nil
}

func rewriteFactory(text string, err error) model.NewPromptRewriteGeneratorFunc {
	return func(_ string, _ ...model.GeneratorOption) (model.PromptRewriteGenerator, error) {
		return &stubRewriteGenerator{text: text, err: err}, nil
	}
}

type ImageServiceSuite struct {
	suite.Suite
}

func TestImageServiceSuite(t *testing.T) {
	suite.Run(t, new(ImageServiceSuite))
}

func (s *ImageServiceSuite) TestGenerateSuccess() {
	factory := &countingImageFactory{data: model.ImageData{
		URL:           "https://example.com/image.png",
		RevisedPrompt: "a detailed mountain landscape",
	}}
	svc := NewService(factory.factory, nil)

	outcome := svc.Generate(context.Background(), "a mountain", model.SizeLarge, model.QualityStandard)

	s.True(outcome.Success)
	s.Equal("https://example.com/image.png", outcome.URL)
	s.Equal("a detailed mountain landscape", outcome.RevisedPrompt)
	s.Empty(outcome.Error)
	s.Equal(1, factory.calls)
}

func (s *ImageServiceSuite) TestGenerateEmptyPromptSkipsRemoteCall() {
	factory := &countingImageFactory{}
	svc := NewService(factory.factory, nil)

	outcome := svc.Generate(context.Background(), "   ", model.SizeLarge, model.QualityStandard)

	s.False(outcome.Success)
	s.Equal("Prompt cannot be empty", outcome.Error)
	s.Zero(factory.calls)
}

func (s *ImageServiceSuite) TestGenerateTruncatesLongPrompts() {
	factory := &countingImageFactory{data: model.ImageData{URL: "https://example.com/x.png"}}
	svc := NewService(factory.factory, nil)

	long := strings.Repeat("a", 5000)
	outcome := svc.Generate(context.Background(), long, model.SizeLarge, model.QualityStandard)

	s.True(outcome.Success)
	s.Len(factory.lastPrompt, 4000)
}

func (s *ImageServiceSuite) TestGenerateTruncatesOnRunesNotBytes() {
	factory := &countingImageFactory{data: model.ImageData{URL: "https://example.com/x.png"}}
	svc := NewService(factory.factory, nil)

	long := strings.Repeat("日", 4500)
	outcome := svc.Generate(context.Background(), long, model.SizeLarge, model.QualityStandard)

	s.True(outcome.Success)
	s.Equal(4000, utf8.RuneCountInString(factory.lastPrompt))
	s.True(utf8.ValidString(factory.lastPrompt))
}

func (s *ImageServiceSuite) TestGenerateClassifiesPolicyViolation() {
	factory := &countingImageFactory{err: errors.New("400: content_policy_violation: rejected")}
	svc := NewService(factory.factory, nil)

	outcome := svc.Generate(context.Background(), "something", model.SizeLarge, model.QualityStandard)

	s.False(outcome.Success)
	s.Equal("Content violates OpenAI policy. Please try a different prompt.", outcome.Error)
}

func (s *ImageServiceSuite) TestGenerateClassifiesQuotaErrors() {
	for _, message := range []string{"billing hard limit reached", "insufficient quota"} {
		factory := &countingImageFactory{err: errors.New(message)}
		svc := NewService(factory.factory, nil)

		outcome := svc.Generate(context.Background(), "something", model.SizeLarge, model.QualityStandard)

		s.False(outcome.Success)
		s.Equal("API quota exceeded or billing issue. Please check your OpenAI account.", outcome.Error)
	}
}

func (s *ImageServiceSuite) TestGenerateClassifiesRateLimit() {
	factory := &countingImageFactory{err: errors.New("429: rate_limit exceeded")}
	svc := NewService(factory.factory, nil)

	outcome := svc.Generate(context.Background(), "something", model.SizeLarge, model.QualityStandard)

	s.False(outcome.Success)
	s.Equal("Rate limit exceeded. Please wait a moment and try again.", outcome.Error)
}

func (s *ImageServiceSuite) TestGenerateGenericErrorKeepsMessage() {
	factory := &countingImageFactory{err: errors.New("dial tcp: timeout")}
	svc := NewService(factory.factory, nil)

	outcome := svc.Generate(context.Background(), "something", model.SizeLarge, model.QualityStandard)

	s.False(outcome.Success)
	s.Contains(outcome.Error, "Image generation failed:")
	s.Contains(outcome.Error, "dial tcp: timeout")
}

func (s *ImageServiceSuite) TestEnhancePromptReturnsRewrite() {
	svc := NewService(nil, rewriteFactory("  a painterly mountain scene  ", nil))

	enhanced := svc.EnhancePrompt(context.Background(), "a mountain")

	s.Equal("a painterly mountain scene", enhanced)
}

func (s *ImageServiceSuite) TestEnhancePromptFallsBackOnError() {
	svc := NewService(nil, rewriteFactory("", errors.New("unreachable")))

	s.Equal("a mountain", svc.EnhancePrompt(context.Background(), "a mountain"))
}

func (s *ImageServiceSuite) TestEnhancePromptFallsBackOnEmptyRewrite() {
	svc := NewService(nil, rewriteFactory("   ", nil))

	s.Equal("a mountain", svc.EnhancePrompt(context.Background(), "a mountain"))
}

func (s *ImageServiceSuite) TestValidatePromptShortPrompt() {
	svc := NewService(nil, nil)

	validation := svc.ValidatePrompt("cat")

	s.False(validation.IsValid)
	s.Contains(validation.Issues, "Prompt is too short")
	s.Contains(validation.Recommendations, "Add more descriptive details")
}

func (s *ImageServiceSuite) TestValidatePromptCountsRunes() {
	svc := NewService(nil, nil)

	// 12 runes but 36 bytes: long enough once counted by rune.
	validation := svc.ValidatePrompt(strings.Repeat("山", 12))

	s.True(validation.IsValid)
	s.Empty(validation.Issues)
}

func (s *ImageServiceSuite) TestValidatePromptProblematicWords() {
	svc := NewService(nil, nil)

	validation := svc.ValidatePrompt("a scene with blood and a weapon on the floor")

	s.False(validation.IsValid)
	s.Require().Len(validation.Issues, 1)
	s.Contains(validation.Issues[0], "blood")
	s.Contains(validation.Issues[0], "weapon")
}

func (s *ImageServiceSuite) TestValidatePromptCleanPrompt() {
	svc := NewService(nil, nil)

	validation := svc.ValidatePrompt("a serene lake surrounded by autumn trees")

	s.True(validation.IsValid)
	s.Empty(validation.Issues)
	s.Empty(validation.Recommendations)
}

func (s *ImageServiceSuite) TestGenerateVariationsAlwaysFails() {
	svc := NewService(nil, nil)

	outcome := svc.GenerateVariations(context.Background(), "https://example.com/x.png", 2)

	s.False(outcome.Success)
	s.Empty(outcome.URLs)
	s.Equal("Image variations not supported with current model", outcome.Error)
}
