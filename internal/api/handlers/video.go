package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/ytfetch/internal/models"
	"github.com/denisAlshanov/ytfetch/internal/services/downloader"
	"github.com/denisAlshanov/ytfetch/internal/services/youtube"
	"github.com/denisAlshanov/ytfetch/internal/utils"
)

// MetadataService answers /check.
type MetadataService interface {
	FetchMetadata(ctx context.Context, rawURL string) (*youtube.VideoMetadata, error)
}

// MediaService answers /download.
type MediaService interface {
	Retrieve(ctx context.Context, req downloader.Request) (*downloader.MediaFile, error)
}

type VideoHandler struct {
	metadata    MetadataService
	media       MediaService
	development bool
}

// NewVideoHandler builds the handler. When development is set, internal
// error details are included in responses.
func NewVideoHandler(metadata MetadataService, media MediaService, development bool) *VideoHandler {
	return &VideoHandler{
		metadata:    metadata,
		media:       media,
		development: development,
	}
}

// Check godoc
// @Summary Check a YouTube video
// @Description Resolve a YouTube link and return its title, length and thumbnail
// @Tags video
// @Accept json
// @Produce json
// @Param request body models.CheckRequest true "YouTube link"
// @Success 200 {object} models.CheckResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /check [post]
func (h *VideoHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, utils.NewValidationError("Invalid request body", err), true)
		return
	}

	meta, err := h.metadata.FetchMetadata(ctx, req.URL)
	if err != nil {
		appErr := toAppError(err)
		if appErr.StatusCode >= http.StatusInternalServerError {
			utils.LogError(ctx, "Failed to check video", err, utils.Fields{"url": req.URL})
		}
		h.errorResponse(c, appErr, true)
		return
	}

	utils.LogInfo(ctx, "Video checked", utils.Fields{
		"video_id": meta.ID,
		"source":   meta.Source,
		"is_short": meta.IsShort,
	})

	c.JSON(http.StatusOK, models.CheckResponse{
		Title:     meta.Title,
		Length:    meta.DurationSeconds,
		Thumbnail: meta.ThumbnailURL,
		Available: meta.Available,
		IsShort:   meta.IsShort,
	})
}

// Download godoc
// @Summary Download a YouTube video
// @Description Download a video as mp4, or its audio track as mp3
// @Tags video
// @Accept json
// @Produce application/octet-stream
// @Param request body models.DownloadRequest true "Download request"
// @Success 200 {file} binary "Media file"
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /download [post]
func (h *VideoHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, utils.NewValidationError("Invalid request body", err), false)
		return
	}

	file, err := h.media.Retrieve(ctx, downloader.Request{
		URL:     req.URL,
		Format:  req.Format,
		Quality: req.Quality,
		Bitrate: req.Bitrate,
	})
	if err != nil {
		if ctx.Err() != nil {
			utils.LogWarn(ctx, "Download cancelled by client", utils.Fields{"url": req.URL})
			return
		}
		appErr := toAppError(err)
		if appErr.StatusCode >= http.StatusInternalServerError {
			utils.LogError(ctx, "Failed to download video", err, utils.Fields{"url": req.URL})
		}
		h.errorResponse(c, appErr, false)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Header("Cache-Control", "no-cache")
	c.Header("Content-Length", strconv.FormatInt(file.Size, 10))
	c.Header("ETag", strconv.Quote(file.Checksum))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *VideoHandler) errorResponse(c *gin.Context, err *utils.AppError, withAvailability bool) {
	resp := models.ErrorResponse{
		Error:     err.Message,
		Code:      string(err.Code),
		RequestID: c.GetString("request_id"),
	}
	if h.development {
		resp.Details = err.Details()
	}
	if withAvailability {
		available := false
		resp.Available = &available
	}
	c.JSON(err.StatusCode, resp)
}

// toAppError maps domain failures onto client-facing error codes.
func toAppError(err error) *utils.AppError {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, youtube.ErrInvalidURL):
		return utils.NewInvalidURLError(err)
	case errors.Is(err, downloader.ErrInvalidRequest):
		return utils.NewValidationError(err.Error(), err)
	case errors.Is(err, youtube.ErrRetrievalFailed):
		return utils.NewRetrievalError(err)
	case errors.Is(err, youtube.ErrMetadataUnavailable):
		return utils.NewMetadataUnavailableError(err)
	default:
		return utils.NewInternalError(err)
	}
}
