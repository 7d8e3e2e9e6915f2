package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/gallery"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/moderation"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/speech"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

type generateRequest struct {
	Prompt  string `json:"prompt" binding:"required"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Enhance bool   `json:"enhance"`
}

type promptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type variationsRequest struct {
	URL string `json:"url" binding:"required"`
	N   int    `json:"n"`
}

type recordRequest struct {
	DurationSeconds int `json:"duration_seconds"`
}

// sessionStore resolves the caller's gallery from the X-Session-ID header,
// falling back to the shared default session.
func (s *Server) sessionStore(c *gin.Context) *gallery.Store {
	return s.sessions.Session(c.GetHeader("X-Session-ID"))
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "ok",
		"microphone_available": s.recorder != nil && s.recorder.Available(),
		"vision_provider":      s.cfg.VisionProvider,
		"rewrite_provider":     s.cfg.RewriteProvider,
		"gallery_size":         s.sessionStore(c).Len(),
		"supported_audio":      model.SupportedAudioExtensions,
	})
}

// handleAudioUpload accepts a multipart audio file and returns its
// transcript.
func (s *Server) handleAudioUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing audio file"})
		return
	}

	extension := utils.FileExtension(fileHeader.Filename)
	if err := speech.ValidateExtension(extension); err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	}
	if fileHeader.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "audio file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read upload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.TranscriptionTimeout())
	defer cancel()

	text, err := s.pipe.Speech.Transcribe(ctx, data, extension)
	if err != nil {
		s.respondTranscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text, "filename": utils.SafeFilename(fileHeader.Filename)})
}

// handleAudioRecord captures audio from the server's microphone and returns
// its transcript.
func (s *Server) handleAudioRecord(c *gin.Context) {
	if s.recorder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": model.ErrMicrophoneUnavailable.Error()})
		return
	}

	var req recordRequest
	_ = c.ShouldBindJSON(&req)
	seconds := req.DurationSeconds
	if seconds <= 0 {
		seconds = s.cfg.RecordSeconds
	}
	duration := time.Duration(seconds) * time.Second

	ctx, cancel := context.WithTimeout(c.Request.Context(), duration+s.cfg.TranscriptionTimeout())
	defer cancel()

	wav, err := s.recorder.Record(ctx, duration)
	if err != nil {
		if errors.Is(err, model.ErrMicrophoneUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	text, err := s.pipe.Speech.Transcribe(ctx, wav, ".wav")
	if err != nil {
		s.respondTranscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":                       text,
		"duration_seconds":           seconds,
		"estimated_pipeline_seconds": utils.EstimateProcessingTime(float64(seconds)),
	})
}

func (s *Server) respondTranscriptionError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrNoSpeech) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No speech detected in the audio. Please try again."})
		return
	}
	logging.NewLogger(c.Request.Context()).Errorf("transcription failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "Transcription failed. Please try again."})
}

// handleGenerate runs the full prompt-to-gallery pipeline.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	size, ok := parseSize(req.Size)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be one of 256x256, 512x512, 1024x1024"})
		return
	}
	quality, ok := parseQuality(req.Quality)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quality must be standard or hd"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.GenerationTimeout())
	defer cancel()

	prompt := req.Prompt
	if req.Enhance {
		prompt = s.pipe.Images.EnhancePrompt(ctx, prompt)
	}

	result := s.pipe.GenerateInto(ctx, s.sessionStore(c), prompt, size, quality)
	switch {
	case result.Blocked:
		c.JSON(http.StatusForbidden, gin.H{
			"error":       "Content blocked: " + result.TextVerdict.Reason,
			"text_verdict": result.TextVerdict,
		})
	case result.Error != "":
		c.JSON(http.StatusBadGateway, gin.H{"error": result.Error})
	default:
		record := result.Record
		c.JSON(http.StatusOK, gin.H{
			"id":               record.ID,
			"prompt":           record.Prompt,
			"revised_prompt":   record.RevisedPrompt,
			"url":              record.URL,
			"created_at":       record.CreatedAt,
			"moderation":       record.Moderation,
			"requires_warning": moderation.ShouldShowWarning(record.Moderation),
			"rating":           moderation.RatingDescription(record.Moderation.ContentRating),
		})
	}
}

func (s *Server) handlePromptEnhance(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.ModerationTimeout())
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"original": req.Prompt,
		"enhanced": s.pipe.Images.EnhancePrompt(ctx, req.Prompt),
	})
}

func (s *Server) handlePromptValidate(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	c.JSON(http.StatusOK, s.pipe.Images.ValidatePrompt(req.Prompt))
}

func (s *Server) handleVariations(c *gin.Context) {
	var req variationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	outcome := s.pipe.Images.GenerateVariations(c.Request.Context(), req.URL, req.N)
	c.JSON(http.StatusOK, outcome)
}

func (s *Server) handleGalleryList(c *gin.Context) {
	store := s.sessionStore(c)
	includeAdult := c.Query("include_adult") == "true"
	records := store.List(includeAdult)

	items := make([]gin.H, 0, len(records))
	for _, record := range records {
		items = append(items, gin.H{
			"id":               record.ID,
			"prompt":           record.Prompt,
			"revised_prompt":   record.RevisedPrompt,
			"created_at":       record.CreatedAt,
			"moderation":       record.Moderation,
			"requires_warning": moderation.ShouldShowWarning(record.Moderation),
			"rating":           moderation.RatingDescription(record.Moderation.ContentRating),
		})
	}
	c.JSON(http.StatusOK, gin.H{"total": store.Len(), "images": items})
}

func (s *Server) handleGalleryImage(c *gin.Context) {
	record, ok := s.sessionStore(c).Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(record.Image), record.Image)
}

func (s *Server) handleGalleryClear(c *gin.Context) {
	cleared := s.sessionStore(c).Clear()
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

// handleSessionReset drops the caller's session entirely, gallery included.
func (s *Server) handleSessionReset(c *gin.Context) {
	cleared := s.sessions.Reset(c.GetHeader("X-Session-ID"))
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

func parseSize(raw string) (model.ImageSize, bool) {
	switch raw {
	case "", string(model.SizeLarge):
		return model.SizeLarge, true
	case string(model.SizeSmall):
		return model.SizeSmall, true
	case string(model.SizeMedium):
		return model.SizeMedium, true
	default:
		return "", false
	}
}

func parseQuality(raw string) (model.ImageQuality, bool) {
	switch raw {
	case "", string(model.QualityStandard):
		return model.QualityStandard, true
	case string(model.QualityHD):
		return model.QualityHD, true
	default:
		return "", false
	}
}
