package media

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/service/media"
	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
	"github.com/fonsecabarber/barber-api/pkg/httputil"
)

// Multipart parts above this size spill to temporary files.
const maxMemory = 32 << 20

type Handler struct {
	service *media.Service
}

func NewHandler(service *media.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/upload-video", h.upload(media.TargetHeroVideo, "video"))
	r.POST("/upload-gallery-video", h.upload(media.TargetGalleryVideo, "video"))
	r.POST("/upload-gallery-image", h.upload(media.TargetGalleryImage, "image"))
}

func (h *Handler) upload(target media.Target, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			httputil.RespondWithError(c, h.formError(err))
			return
		}
		if c.Request.MultipartForm != nil {
			defer c.Request.MultipartForm.RemoveAll()
		}

		header, err := c.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
				httputil.RespondWithError(c, apperrors.NewBadRequest("No file uploaded", err))
				return
			}
			httputil.RespondWithError(c, h.formError(err))
			return
		}

		file, err := header.Open()
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewInternal(err))
			return
		}
		defer file.Close()

		url, err := h.service.Upload(c.Request.Context(), target, media.File{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithData(c, model.UploadResponse{URL: url})
	}
}

// formError reports a body cut off by the size limit as too large.
func (h *Handler) formError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return apperrors.NewTooLarge(h.service.MaxBytes())
	}
	return apperrors.NewBadRequest("malformed multipart body", err)
}
