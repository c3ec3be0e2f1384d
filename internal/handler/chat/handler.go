package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/service/chat"
	"github.com/fonsecabarber/barber-api/pkg/httputil"
)

type Handler struct {
	service *chat.Service
}

func NewHandler(service *chat.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
}

func (h *Handler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Reply(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithData(c, resp)
}
