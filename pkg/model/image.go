package model

import "time"

type ImageSize string

const (
	SizeSmall  ImageSize = "256x256"
	SizeMedium ImageSize = "512x512"
	SizeLarge  ImageSize = "1024x1024"
)

type ImageQuality string

const (
	QualityStandard ImageQuality = "standard"
	QualityHD       ImageQuality = "hd"
)

// ImageData is what an image-generation provider returns: the remote URL of
// the rendered image and the prompt as the provider rewrote it, if it did.
// Downloading the image is the caller's responsibility.
type ImageData struct {
	URL           string
	RevisedPrompt string
}

// GenerationOutcome is the structured result of an image-generation request.
// Every failure mode yields the same shape with a distinct Error message.
type GenerationOutcome struct {
	Success       bool   `json:"success"`
	URL           string `json:"url,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
	Error         string `json:"error,omitempty"`
}

// PromptValidation is the result of the purely local prompt heuristic.
type PromptValidation struct {
	IsValid         bool     `json:"is_valid"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// VariationsOutcome mirrors GenerationOutcome for the (unsupported) image
// variations operation.
type VariationsOutcome struct {
	Success bool     `json:"success"`
	URLs    []string `json:"urls"`
	Error   string   `json:"error,omitempty"`
}

// GeneratedImage is one gallery record: the downloaded image bytes plus the
// prompt that produced it and its moderation verdict. Records are never
// mutated after creation; a record always carries exactly one verdict.
type GeneratedImage struct {
	ID            string       `json:"id"`
	Prompt        string       `json:"prompt"`
	RevisedPrompt string       `json:"revised_prompt,omitempty"`
	URL           string       `json:"url"`
	Image         []byte       `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	Moderation    ImageVerdict `json:"moderation"`
}
