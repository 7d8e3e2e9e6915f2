package imagegen

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

const (
	maxPromptLength = 4000
	minPromptLength = 10
)

// problematicWords trip the local validation heuristic. They overlap with the
// moderation keyword lists on purpose: validation is advisory, moderation is
// binding.
var problematicWords = []string{
	"violence", "weapon", "blood", "death", "kill",
	"nude", "naked", "sexual", "explicit",
}

// Service renders images from text prompts. All remote failures are folded
// into structured outcomes so callers never see a raw provider error.
type Service struct {
	newImage   model.NewImageGeneratorFunc
	newRewrite model.NewPromptRewriteGeneratorFunc
	opts       []model.GeneratorOption
}

func NewService(
	newImage model.NewImageGeneratorFunc,
	newRewrite model.NewPromptRewriteGeneratorFunc,
	opts ...model.GeneratorOption,
) *Service {
	return &Service{
		newImage:   newImage,
		newRewrite: newRewrite,
		opts:       opts,
	}
}

// Generate renders one image for the prompt. Empty prompts are rejected
// before any remote call, over-long prompts are truncated to the provider
// limit, and provider errors are classified into user-facing messages.
func (s *Service) Generate(ctx context.Context, prompt string, size model.ImageSize, quality model.ImageQuality) model.GenerationOutcome {
	log := logging.NewLogger(ctx)
	log.Infof("generating image for prompt: %.100q", prompt)

	if strings.TrimSpace(prompt) == "" {
		return model.GenerationOutcome{
			Success: false,
			Error:   "Prompt cannot be empty",
		}
	}

	if utf8.RuneCountInString(prompt) > maxPromptLength {
		prompt = string([]rune(prompt)[:maxPromptLength])
		log.Infof("prompt truncated to %d characters", maxPromptLength)
	}

	generator, err := s.newImage(prompt, size, quality, s.opts...)
	if err != nil {
		return classifyGenerationError(err)
	}

	data, metadata, err := generator.Generate(ctx)
	if err != nil {
		log.Errorf("image generation failed: %v", err)
		return classifyGenerationError(err)
	}

	log.Infof("image generated successfully, latency=%sms", metadata[model.MetadataKeyLatencyMs])
	return model.GenerationOutcome{
		Success:       true,
		URL:           data.URL,
		RevisedPrompt: data.RevisedPrompt,
	}
}

// EnhancePrompt asks a chat model to rewrite the prompt with artistic detail.
// Any failure falls back to the original prompt; enhancement is best-effort
// and must never block generation.
func (s *Service) EnhancePrompt(ctx context.Context, prompt string) string {
	log := logging.NewLogger(ctx)
	log.Infof("enhancing prompt")

	generator, err := s.newRewrite(prompt, s.opts...)
	if err != nil {
		log.Warnf("prompt enhancement unavailable: %v", err)
		return prompt
	}

	enhanced, _, err := generator.Generate(ctx)
	if err != nil {
		log.Warnf("prompt enhancement failed: %v", err)
		return prompt
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		return prompt
	}

	log.Infof("prompt enhanced successfully")
	return enhanced
}

// ValidatePrompt runs purely local checks and never calls a provider.
func (s *Service) ValidatePrompt(prompt string) model.PromptValidation {
	issues := []string{}
	recommendations := []string{}

	if utf8.RuneCountInString(prompt) < minPromptLength {
		issues = append(issues, "Prompt is too short")
		recommendations = append(recommendations, "Add more descriptive details")
	}

	if utf8.RuneCountInString(prompt) > maxPromptLength {
		issues = append(issues, "Prompt is too long")
		recommendations = append(recommendations, fmt.Sprintf("Reduce prompt length to under %d characters", maxPromptLength))
	}

	promptLower := strings.ToLower(prompt)
	found := []string{}
	for _, word := range problematicWords {
		if strings.Contains(promptLower, word) {
			found = append(found, word)
		}
	}
	if len(found) > 0 {
		issues = append(issues, "Potentially problematic content: "+strings.Join(found, ", "))
		recommendations = append(recommendations, "Consider rephrasing to avoid content policy violations")
	}

	return model.PromptValidation{
		IsValid:         len(issues) == 0,
		Issues:          issues,
		Recommendations: recommendations,
	}
}

// GenerateVariations always fails: the current image model has no variations
// endpoint. The structured outcome keeps the API surface stable for clients.
func (s *Service) GenerateVariations(ctx context.Context, imageURL string, n int) model.VariationsOutcome {
	logging.NewLogger(ctx).Infof("variations requested for %s (n=%d), not supported", imageURL, n)
	return model.VariationsOutcome{
		Success: false,
		URLs:    []string{},
		Error:   "Image variations not supported with current model",
	}
}

// classifyGenerationError maps provider failures onto the fixed set of
// user-facing messages.
func classifyGenerationError(err error) model.GenerationOutcome {
	switch {
	case utils.ContainsErrorSubstring(err, "content_policy_violation"):
		return model.GenerationOutcome{
			Success: false,
			Error:   "Content violates OpenAI policy. Please try a different prompt.",
		}
	case utils.ContainsErrorSubstring(err, "billing") || utils.ContainsErrorSubstring(err, "quota"):
		return model.GenerationOutcome{
			Success: false,
			Error:   "API quota exceeded or billing issue. Please check your OpenAI account.",
		}
	case utils.ContainsErrorSubstring(err, "rate_limit"):
		return model.GenerationOutcome{
			Success: false,
			Error:   "Rate limit exceeded. Please wait a moment and try again.",
		}
	default:
		return model.GenerationOutcome{
			Success: false,
			Error:   fmt.Sprintf("Image generation failed: %v", err),
		}
	}
}
