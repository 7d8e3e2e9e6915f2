package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/moderation"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/pipeline"
)

// New builds an MCP server exposing the pipeline as tools, for use from
// agent hosts over stdio.
func New(pipe *pipeline.Service) *server.MCPServer {
	s := server.NewMCPServer("speech-to-image", "1.0.0",
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("transcribe_audio",
			mcp.WithDescription("Transcribe spoken audio into text. Audio is passed base64-encoded."),
			mcp.WithString("audio_base64", mcp.Required(), mcp.Description("Base64-encoded audio bytes")),
			mcp.WithString("extension", mcp.Description("Audio container extension, e.g. .wav (default .wav)")),
		),
		handleTranscribe(pipe),
	)

	s.AddTool(
		mcp.NewTool("moderate_text",
			mcp.WithDescription("Screen a text prompt for content policy issues. Returns a verdict, never an error."),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to screen")),
		),
		handleModerateText(pipe),
	)

	s.AddTool(
		mcp.NewTool("generate_image",
			mcp.WithDescription("Moderate a prompt, render an image for it, moderate the image and store it in the session gallery."),
			mcp.WithString("prompt", mcp.Required(), mcp.Description("Image description")),
			mcp.WithString("size", mcp.Description("Image size: 256x256, 512x512 or 1024x1024 (default)")),
			mcp.WithString("quality", mcp.Description("Image quality: standard (default) or hd")),
		),
		handleGenerate(pipe),
	)

	s.AddTool(
		mcp.NewTool("validate_prompt",
			mcp.WithDescription("Run local heuristics over a prompt without calling any remote model."),
			mcp.WithString("prompt", mcp.Required(), mcp.Description("Prompt to validate")),
		),
		handleValidate(pipe),
	)

	s.AddTool(
		mcp.NewTool("list_gallery",
			mcp.WithDescription("List images generated in this session, newest first."),
			mcp.WithBoolean("include_adult", mcp.Description("Include records flagged as adult content (default false)")),
		),
		handleListGallery(pipe),
	)

	return s
}

func handleTranscribe(pipe *pipeline.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		encoded, err := request.RequireString("audio_base64")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		extension := request.GetString("extension", ".wav")

		audio, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid base64 audio: %v", err)), nil
		}

		text, err := pipe.Speech.Transcribe(ctx, audio, extension)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func handleModerateText(pipe *pipeline.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(pipe.Moderation.ModerateText(ctx, text))
	}
}

func handleGenerate(pipe *pipeline.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := request.RequireString("prompt")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		size := model.ImageSize(request.GetString("size", string(model.SizeLarge)))
		quality := model.ImageQuality(request.GetString("quality", string(model.QualityStandard)))

		result := pipe.GenerateFromPrompt(ctx, prompt, size, quality)
		switch {
		case result.Blocked:
			return mcp.NewToolResultError("Content blocked: " + result.TextVerdict.Reason), nil
		case result.Error != "":
			return mcp.NewToolResultError(result.Error), nil
		default:
			return jsonResult(map[string]any{
				"id":               result.Record.ID,
				"url":              result.Record.URL,
				"revised_prompt":   result.Record.RevisedPrompt,
				"moderation":       result.Record.Moderation,
				"requires_warning": moderation.ShouldShowWarning(result.Record.Moderation),
			})
		}
	}
}

func handleValidate(pipe *pipeline.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := request.RequireString("prompt")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(pipe.Images.ValidatePrompt(prompt))
	}
}

func handleListGallery(pipe *pipeline.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeAdult := request.GetBool("include_adult", false)
		records := pipe.Gallery.List(includeAdult)

		items := make([]map[string]any, 0, len(records))
		for _, record := range records {
			items = append(items, map[string]any{
				"id":               record.ID,
				"prompt":           record.Prompt,
				"created_at":       record.CreatedAt,
				"moderation":       record.Moderation,
				"requires_warning": moderation.ShouldShowWarning(record.Moderation),
			})
		}
		return jsonResult(map[string]any{"total": len(items), "images": items})
	}
}

func jsonResult(value any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
