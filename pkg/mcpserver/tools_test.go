package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/suite"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/gallery"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/imagegen"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/moderation"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/pipeline"
)

type stubTextScreen struct{}

func (stubTextScreen) Generate(_ context.Context) (model.TextScreenResult, model.GenerationMetadata, error) {
	return model.TextScreenResult{}, model.GenerationMetadata{}, nil
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

func resultText(s *ToolsSuite, result *mcp.CallToolResult) string {
	s.Require().NotNil(result)
	s.Require().NotEmpty(result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	s.Require().True(ok)
	return text.Text
}

type ToolsSuite struct {
	suite.Suite
	pipe *pipeline.Service
}

func TestToolsSuite(t *testing.T) {
	suite.Run(t, new(ToolsSuite))
}

func (s *ToolsSuite) SetupTest() {
	newScreen := func(_ string, _ ...model.GeneratorOption) (model.TextScreenGenerator, error) {
		return stubTextScreen{}, nil
	}
	s.pipe = &pipeline.Service{
		Moderation: moderation.NewService(newScreen, nil),
		Images:     imagegen.NewService(nil, nil),
		Gallery:    gallery.NewStore(),
	}
}

func (s *ToolsSuite) TestModerateTextToolReturnsVerdictJSON() {
	handler := handleModerateText(s.pipe)

	result, err := handler(context.Background(), callRequest("moderate_text", map[string]any{
		"text": "a peaceful mountain landscape",
	}))

	s.Require().NoError(err)
	s.False(result.IsError)
	s.Contains(resultText(s, result), `"is_safe":true`)
}

func (s *ToolsSuite) TestModerateTextToolMissingArgument() {
	handler := handleModerateText(s.pipe)

	result, err := handler(context.Background(), callRequest("moderate_text", map[string]any{}))

	s.Require().NoError(err)
	s.True(result.IsError)
}

func (s *ToolsSuite) TestValidatePromptTool() {
	handler := handleValidate(s.pipe)

	result, err := handler(context.Background(), callRequest("validate_prompt", map[string]any{
		"prompt": "cat",
	}))

	s.Require().NoError(err)
	s.False(result.IsError)
	s.Contains(resultText(s, result), "Prompt is too short")
}

func (s *ToolsSuite) TestListGalleryToolFiltersAdultContent() {
	s.pipe.Gallery.Append(model.GeneratedImage{Prompt: "clean"})
	s.pipe.Gallery.Append(model.GeneratedImage{
		Prompt:     "flagged",
		Moderation: model.ImageVerdict{IsAdultContent: true},
	})
	handler := handleListGallery(s.pipe)

	result, err := handler(context.Background(), callRequest("list_gallery", map[string]any{}))

	s.Require().NoError(err)
	text := resultText(s, result)
	s.Contains(text, `"total":1`)
	s.Contains(text, "clean")
	s.NotContains(text, "flagged")
}

func (s *ToolsSuite) TestTranscribeToolRejectsBadBase64() {
	handler := handleTranscribe(s.pipe)

	result, err := handler(context.Background(), callRequest("transcribe_audio", map[string]any{
		"audio_base64": "not base64!!",
	}))

	s.Require().NoError(err)
	s.True(result.IsError)
}
