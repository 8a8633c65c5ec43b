package middleware

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/ytfetch/internal/models"
	"github.com/denisAlshanov/ytfetch/internal/utils"
)

// StaticFiles serves regular files under root for GET and HEAD requests
// that matched no route. "/" serves the index file. Directories are never
// listed and anything else gets a JSON 404.
func StaticFiles(root, index string) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead {
			if file, ok := resolveStatic(root, index, c.Request.URL.Path); ok {
				c.File(file)
				return
			}
		}

		appErr := utils.NewNotFoundError(c.Request.URL.Path)
		c.JSON(appErr.StatusCode, models.ErrorResponse{
			Error:     appErr.Message,
			Code:      string(appErr.Code),
			RequestID: c.GetString("request_id"),
		})
	}
}

// resolveStatic maps a URL path to a regular file inside root.
func resolveStatic(root, index, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		clean = "/" + index
	}

	file := filepath.Join(root, filepath.FromSlash(clean))
	rel, err := filepath.Rel(root, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return file, true
}
