package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/service/admin"
	"github.com/fonsecabarber/barber-api/pkg/httputil"
)

type Handler struct {
	service *admin.Service
}

func NewHandler(service *admin.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.POST("/settings", h.UpdateSettings)
		admin.POST("/services", h.ReplaceServices)
		admin.POST("/gallery", h.ReplaceGallery)
		admin.POST("/video-gallery", h.ReplaceVideoGallery)
	}
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateSettings(c.Request.Context(), req.Settings); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c)
}

func (h *Handler) ReplaceServices(c *gin.Context) {
	var req model.ReplaceServicesRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	if err := h.service.ReplaceServices(c.Request.Context(), req.Services); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c)
}

func (h *Handler) ReplaceGallery(c *gin.Context) {
	var req model.ReplaceGalleryRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	if err := h.service.ReplaceGallery(c.Request.Context(), req.Gallery); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c)
}

func (h *Handler) ReplaceVideoGallery(c *gin.Context) {
	var req model.ReplaceVideoGalleryRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	if err := h.service.ReplaceVideoGallery(c.Request.Context(), req.VideoGallery); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c)
}
