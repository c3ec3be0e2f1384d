package content

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fonsecabarber/barber-api/internal/model"
)

// Reader is the Content Fetch Gateway.
type Reader interface {
	Get(ctx context.Context) model.ContentDocument
}

type Handler struct {
	reader Reader
}

func NewHandler(reader Reader) *Handler {
	return &Handler{reader: reader}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/content", h.GetContent)
}

// GetContent always answers 200; degraded reads carry the default document.
func (h *Handler) GetContent(c *gin.Context) {
	doc := h.reader.Get(c.Request.Context())
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, doc)
}
