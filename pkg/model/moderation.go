package model

// TextVerdict is the outcome of moderating a text prompt. Immutable once
// produced.
type TextVerdict struct {
	IsSafe            bool     `json:"is_safe"`
	Reason            string   `json:"reason"`
	FlaggedCategories []string `json:"flagged_categories"`
	Confidence        float64  `json:"confidence"`
}

// TextScreenResult is the wire-level outcome of a hosted moderation endpoint
// call, before the local keyword screen runs.
type TextScreenResult struct {
	Flagged           bool
	FlaggedCategories []string
	MaxScore          float64
}

type ContentRating string

const (
	RatingGeneral ContentRating = "general"
	RatingTeen    ContentRating = "teen"
	RatingMature  ContentRating = "mature"
	RatingAdult   ContentRating = "adult"
)

// ImageAnalysis is the JSON contract the vision model is instructed to emit.
type ImageAnalysis struct {
	IsAdultContent  bool          `json:"is_adult_content"`
	IsViolent       bool          `json:"is_violent"`
	IsInappropriate bool          `json:"is_inappropriate"`
	ContentRating   ContentRating `json:"content_rating"`
	Description     string        `json:"description"`
	Confidence      float64       `json:"confidence"`
}

// ImageVerdict is the outcome of moderating a generated image.
// RequiresWarning is always the OR of the three boolean flags.
type ImageVerdict struct {
	IsAdultContent  bool          `json:"is_adult_content"`
	IsViolent       bool          `json:"is_violent"`
	IsInappropriate bool          `json:"is_inappropriate"`
	ContentRating   ContentRating `json:"content_rating"`
	Description     string        `json:"description"`
	Confidence      float64       `json:"confidence"`
	RequiresWarning bool          `json:"requires_warning"`
}
