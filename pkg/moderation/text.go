package moderation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

const (
	keywordConfidence  = 0.7
	approvedConfidence = 0.1
	errorConfidence    = 1.0
)

// Service moderates text prompts and generated images. It is stateless aside
// from the generator factories it was built with, so a single instance can be
// shared.
type Service struct {
	newTextScreen    model.NewTextScreenGeneratorFunc
	newImageAnalysis model.NewImageAnalysisGeneratorFunc
	opts             []model.GeneratorOption
}

func NewService(
	newTextScreen model.NewTextScreenGeneratorFunc,
	newImageAnalysis model.NewImageAnalysisGeneratorFunc,
	opts ...model.GeneratorOption,
) *Service {
	return &Service{
		newTextScreen:    newTextScreen,
		newImageAnalysis: newImageAnalysis,
		opts:             opts,
	}
}

// ModerateText screens a prompt through the hosted moderation endpoint and,
// only if that passes, through the local keyword lists. It never returns an
// error: any internal fault produces an unsafe verdict with full confidence.
// An error in moderation must never be read as "safe".
func (s *Service) ModerateText(ctx context.Context, text string) model.TextVerdict {
	log := logging.NewLogger(ctx)
	log.Infof("moderating text content: %.50q", text)

	generator, err := s.newTextScreen(text, s.opts...)
	if err != nil {
		return textErrorVerdict(err)
	}

	screen, _, err := generator.Generate(ctx)
	if err != nil {
		return textErrorVerdict(err)
	}

	if screen.Flagged {
		return model.TextVerdict{
			IsSafe:            false,
			Reason:            "Content flagged for: " + strings.Join(screen.FlaggedCategories, ", "),
			FlaggedCategories: screen.FlaggedCategories,
			Confidence:        screen.MaxScore,
		}
	}

	if indicators := keywordIndicators(text); len(indicators) > 0 {
		return model.TextVerdict{
			IsSafe:            false,
			Reason:            "Detected: " + strings.Join(indicators, ", "),
			FlaggedCategories: indicators,
			Confidence:        keywordConfidence,
		}
	}

	log.Infof("text content approved")
	return model.TextVerdict{
		IsSafe:            true,
		Reason:            "Content approved",
		FlaggedCategories: []string{},
		Confidence:        approvedConfidence,
	}
}

func textErrorVerdict(err error) model.TextVerdict {
	return model.TextVerdict{
		IsSafe:            false,
		Reason:            fmt.Sprintf("Moderation error: %v", err),
		FlaggedCategories: []string{"error"},
		Confidence:        errorConfidence,
	}
}
