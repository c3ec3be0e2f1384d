package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
)

// SuccessResponse is the acknowledgement returned by every write endpoint.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse carries a failure back to the caller verbatim.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"`
}

// RespondWithSuccess sends {success:true}
func RespondWithSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// RespondWithData sends a bare JSON document
func RespondWithData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternal(err)
	}

	status := appErr.StatusCode()
	message := appErr.Message
	// Write failures must reach the caller, including the store's own message.
	if appErr.Code == apperrors.ErrInternal && appErr.Err != nil {
		message = appErr.Err.Error()
	}

	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Str("code", appErr.Code.String()).Msg("request failed")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:  message,
		Code:   appErr.Code.String(),
		Fields: appErr.Fields,
	})
}
