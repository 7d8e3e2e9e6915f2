package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

type stubTextScreen struct {
	result model.TextScreenResult
	err    error
}

func (g *stubTextScreen) Generate(_ context.Context) (model.TextScreenResult, model.GenerationMetadata, error) {
	return g.result, model.GenerationMetadata{}, g.err
}

func textScreenFactory(result model.TextScreenResult, err error) model.NewTextScreenGeneratorFunc {
	return func(_ string, _ ...model.GeneratorOption) (model.TextScreenGenerator, error) {
		return &stubTextScreen{result: result, err: err}, nil
	}
}

type TextModerationSuite struct {
	suite.Suite
}

func TestTextModerationSuite(t *testing.T) {
	suite.Run(t, new(TextModerationSuite))
}

func (s *TextModerationSuite) newService(screen model.NewTextScreenGeneratorFunc) *Service {
	return NewService(screen, nil)
}

func (s *TextModerationSuite) TestModerateTextApprovesCleanContent() {
	svc := s.newService(textScreenFactory(model.TextScreenResult{}, nil))

	verdict := svc.ModerateText(context.Background(), "a peaceful mountain landscape at sunset")

	s.True(verdict.IsSafe)
	s.Equal("Content approved", verdict.Reason)
	s.Empty(verdict.FlaggedCategories)
	s.InDelta(0.1, verdict.Confidence, 1e-9)
}

func (s *TextModerationSuite) TestModerateTextUsesScreenVerdict() {
	svc := s.newService(textScreenFactory(model.TextScreenResult{
		Flagged:           true,
		FlaggedCategories: []string{"violent content", "hate speech"},
		MaxScore:          0.93,
	}, nil))

	verdict := svc.ModerateText(context.Background(), "something awful")

	s.False(verdict.IsSafe)
	s.Equal("Content flagged for: violent content, hate speech", verdict.Reason)
	s.Equal([]string{"violent content", "hate speech"}, verdict.FlaggedCategories)
	s.InDelta(0.93, verdict.Confidence, 1e-9)
}

func (s *TextModerationSuite) TestModerateTextFallsBackToKeywords() {
	svc := s.newService(textScreenFactory(model.TextScreenResult{}, nil))

	verdict := svc.ModerateText(context.Background(), "explicit violence and blood")

	s.False(verdict.IsSafe)
	s.Contains(verdict.Reason, "Detected:")
	s.Contains(verdict.FlaggedCategories, "violent content indicators")
	s.InDelta(0.7, verdict.Confidence, 1e-9)
}

func (s *TextModerationSuite) TestModerateTextKeywordMatchIsCaseInsensitive() {
	svc := s.newService(textScreenFactory(model.TextScreenResult{}, nil))

	verdict := svc.ModerateText(context.Background(), "a NUDE statue")

	s.False(verdict.IsSafe)
	s.Contains(verdict.FlaggedCategories, "adult content indicators")
}

func (s *TextModerationSuite) TestModerateTextScreenErrorFailsClosed() {
	svc := s.newService(textScreenFactory(model.TextScreenResult{}, errors.New("connection refused")))

	verdict := svc.ModerateText(context.Background(), "anything at all")

	s.False(verdict.IsSafe)
	s.Contains(verdict.Reason, "Moderation error:")
	s.Equal([]string{"error"}, verdict.FlaggedCategories)
	s.InDelta(1.0, verdict.Confidence, 1e-9)
}

func (s *TextModerationSuite) TestModerateTextFactoryErrorFailsClosed() {
	svc := s.newService(func(_ string, _ ...model.GeneratorOption) (model.TextScreenGenerator, error) {
		return nil, errors.New("missing credentials")
	})

	verdict := svc.ModerateText(context.Background(), "anything at all")

	s.False(verdict.IsSafe)
	s.Equal([]string{"error"}, verdict.FlaggedCategories)
	s.InDelta(1.0, verdict.Confidence, 1e-9)
}

func (s *TextModerationSuite) TestKeywordIndicatorsOrdering() {
	indicators := keywordIndicators("a naked man with a weapon taking drugs")

	s.Equal([]string{
		"adult content indicators",
		"violent content indicators",
		"inappropriate content indicators",
	}, indicators)
}

func (s *TextModerationSuite) TestKeywordIndicatorsEmptyForCleanText() {
	s.Empty(keywordIndicators("a watercolor painting of a lighthouse"))
}
