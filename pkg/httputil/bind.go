package httputil

import (
	"github.com/gin-gonic/gin"

	"github.com/fonsecabarber/barber-api/pkg/validator"
)

// BindJSON decodes and validates the body into obj. On failure it has already
// written the error response and the handler should return.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondWithError(c, validator.Translate(err))
		return false
	}
	return true
}
