package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = s.cfg.MaxUploadBytes

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/status", s.handleStatus)

	api := router.Group("/api")
	{
		api.POST("/audio/upload", s.handleAudioUpload)
		api.POST("/audio/record", s.handleAudioRecord)

		api.POST("/generate", s.handleGenerate)
		api.POST("/prompt/enhance", s.handlePromptEnhance)
		api.POST("/prompt/validate", s.handlePromptValidate)
		api.POST("/variations", s.handleVariations)

		api.GET("/gallery", s.handleGalleryList)
		api.GET("/gallery/:id/image", s.handleGalleryImage)
		api.DELETE("/gallery", s.handleGalleryClear)
		api.DELETE("/session", s.handleSessionReset)
	}

	return router
}
