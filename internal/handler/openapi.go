package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/static"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API docs UI. The page loads its JS from a CDN
// and reads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	files fs.FS
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		files:   static.Files,
	}
}

// ServeOpenAPIUI serves openapi.html with caching disabled, so doc updates
// show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	templateBytes, err := fs.ReadFile(h.files, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, templateBytes); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
