package moderation

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

const analysisInstruction = `You are a content moderator. Analyze this image and determine if it contains:
1. Adult/sexual content (nudity, sexual situations, etc.)
2. Violent content (weapons, blood, violence, etc.)
3. Inappropriate content for general audiences

content_rating must be one of: "general", "teen", "mature", "adult".
description should briefly describe concerning elements, if any.
confidence is a number between 0 and 1.

Respond with a single JSON object matching this schema:
`

var analysisSystemPromptOnce = sync.OnceValue(func() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(model.ImageAnalysis{})
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		// The contract struct is static; reflection over it cannot fail
		// at runtime in practice. Fall back to the prose instruction.
		return analysisInstruction
	}

	return analysisInstruction + string(schemaJSON)
})

// analysisSystemPrompt is the fixed system instruction for image analysis,
// with the expected JSON contract reflected from model.ImageAnalysis.
func analysisSystemPrompt() string {
	return analysisSystemPromptOnce()
}
