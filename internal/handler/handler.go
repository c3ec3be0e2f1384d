package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFoundResponse describes an unmatched request, as a debugging aid.
type NotFoundResponse struct {
	Error       string `json:"error"`
	Path        string `json:"path"`
	OriginalURL string `json:"originalUrl"`
	URL         string `json:"url"`
	Method      string `json:"method"`
}

// NotFound is installed as the engine's NoRoute handler. With HandleMethodNotAllowed
// off, a known path hit with the wrong method lands here too.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NotFoundResponse{
		Error:       "API Route Not Found",
		Path:        c.Request.URL.Path,
		OriginalURL: c.Request.RequestURI,
		URL:         c.Request.URL.RequestURI(),
		Method:      c.Request.Method,
	})
}
