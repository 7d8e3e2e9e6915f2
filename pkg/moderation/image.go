package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"strings"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

const (
	defaultAnalysisConfidence = 0.5
	parseFailureDescription   = "Analysis failed"
)

// ModerateImage runs a generated image through the vision analysis model and
// returns a verdict. It never returns an error, but the two failure modes are
// deliberately not symmetric:
//
//   - transport or preprocessing failure yields a conservative verdict that
//     flags the image, because nothing about the content is known;
//   - a model reply that is not parseable JSON yields a permissive default,
//     because the model did see the image and said nothing alarming in a form
//     we could read.
func (s *Service) ModerateImage(ctx context.Context, img image.Image) model.ImageVerdict {
	log := logging.NewLogger(ctx)

	jpegBytes, err := prepareForAnalysis(img)
	if err != nil {
		log.Errorf("image preprocessing failed: %v", err)
		return imageErrorVerdict(err)
	}

	generator, err := s.newImageAnalysis(analysisSystemPrompt(), jpegBytes, s.opts...)
	if err != nil {
		return imageErrorVerdict(err)
	}

	raw, _, err := generator.Generate(ctx)
	if err != nil {
		log.Errorf("image analysis call failed: %v", err)
		return imageErrorVerdict(err)
	}

	analysis := parseAnalysis(ctx, raw)
	return verdictFromAnalysis(analysis)
}

// parseAnalysis extracts the JSON verdict from the model's reply, tolerating
// surrounding prose and markdown fences. Unparseable replies fall back to the
// permissive default.
func parseAnalysis(ctx context.Context, raw string) model.ImageAnalysis {
	fallback := model.ImageAnalysis{
		ContentRating: model.RatingGeneral,
		Description:   parseFailureDescription,
		Confidence:    defaultAnalysisConfidence,
	}

	candidate := extractJSONObject(raw)
	if candidate == "" {
		logging.NewLogger(ctx).Warnf("no JSON object in analysis reply: %.100q", raw)
		return fallback
	}

	var analysis model.ImageAnalysis
	if err := json.Unmarshal([]byte(candidate), &analysis); err != nil {
		logging.NewLogger(ctx).Warnf("unparseable analysis reply: %v", err)
		return fallback
	}

	if analysis.ContentRating == "" {
		analysis.ContentRating = model.RatingGeneral
	}
	if analysis.Confidence == 0 {
		analysis.Confidence = defaultAnalysisConfidence
	}
	return analysis
}

// extractJSONObject returns the outermost {...} span of the reply, or "" when
// the reply holds no object at all.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func verdictFromAnalysis(analysis model.ImageAnalysis) model.ImageVerdict {
	return model.ImageVerdict{
		IsAdultContent:  analysis.IsAdultContent,
		IsViolent:       analysis.IsViolent,
		IsInappropriate: analysis.IsInappropriate,
		ContentRating:   analysis.ContentRating,
		Description:     analysis.Description,
		Confidence:      analysis.Confidence,
		RequiresWarning: analysis.IsAdultContent || analysis.IsViolent || analysis.IsInappropriate,
	}
}

// imageErrorVerdict is the conservative verdict for failures where the image
// was never analyzed. Violence stays false: only the categories the original
// policy marks on error are set.
func imageErrorVerdict(err error) model.ImageVerdict {
	return model.ImageVerdict{
		IsAdultContent:  true,
		IsViolent:       false,
		IsInappropriate: true,
		ContentRating:   model.RatingAdult,
		Description:     fmt.Sprintf("Moderation error: %v", err),
		Confidence:      errorConfidence,
		RequiresWarning: true,
	}
}

// RatingDescription renders a content rating for display.
func RatingDescription(rating model.ContentRating) string {
	switch rating {
	case model.RatingGeneral:
		return "General audiences"
	case model.RatingTeen:
		return "Teen (13+)"
	case model.RatingMature:
		return "Mature (17+)"
	case model.RatingAdult:
		return "Adult (18+)"
	default:
		return "Unknown rating"
	}
}

// ShouldShowWarning reports whether a gallery entry needs a content warning:
// either a flag was raised or the rating alone is mature/adult.
func ShouldShowWarning(verdict model.ImageVerdict) bool {
	if verdict.RequiresWarning {
		return true
	}
	return verdict.ContentRating == model.RatingMature || verdict.ContentRating == model.RatingAdult
}
