package handlers

import (
	"net/http"
	"os/exec"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/ytfetch/internal/models"
	"github.com/denisAlshanov/ytfetch/internal/utils"
)

const serviceVersion = "1.0.0"

type HealthHandler struct {
	ytdlpPath string
	lookPath  func(file string) (string, error)
}

// NewHealthHandler checks for the yt-dlp binary at ytdlpPath, or on PATH
// when it is empty.
func NewHealthHandler(ytdlpPath string) *HealthHandler {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	return &HealthHandler{
		ytdlpPath: ytdlpPath,
		lookPath:  exec.LookPath,
	}
}

// Health godoc
// @Summary Health check endpoint
// @Description Check the service and the external tools it shells out to
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Success 503 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   serviceVersion,
		Services:  h.checkTools(),
	}

	for name, status := range response.Services {
		if status != "healthy" {
			utils.LogWarn(ctx, "Health check failed", utils.Fields{"tool": name, "status": status})
			response.Status = "unhealthy"
		}
	}

	if response.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Readiness godoc
// @Summary Readiness check endpoint
// @Description Ready once yt-dlp can be found
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	_, err := h.lookPath(h.ytdlpPath)
	ready := err == nil

	response := gin.H{
		"ready":     ready,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if !ready {
		response["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// checkTools reports yt-dlp and ffmpeg availability. ffmpeg is needed for
// audio extraction and merging video with audio.
func (h *HealthHandler) checkTools() map[string]string {
	services := make(map[string]string, 2)
	for name, file := range map[string]string{"yt-dlp": h.ytdlpPath, "ffmpeg": "ffmpeg"} {
		if _, err := h.lookPath(file); err != nil {
			services[name] = "unhealthy: " + err.Error()
			continue
		}
		services[name] = "healthy"
	}
	return services
}
