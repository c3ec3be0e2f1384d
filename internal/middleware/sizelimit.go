package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
	"github.com/fonsecabarber/barber-api/pkg/httputil"
)

// SizeLimitConfig represents size limit configuration
type SizeLimitConfig struct {
	MaxBodySize   int64 // in bytes
	MaxHeaderSize int   // in bytes
}

func DefaultSizeLimitConfig(maxBody int64) SizeLimitConfig {
	return SizeLimitConfig{
		MaxBodySize:   maxBody,
		MaxHeaderSize: 1 << 14, // 16KB
	}
}

// SizeLimit rejects oversized requests up front and caps the body reader so a
// request without Content-Length cannot exceed the limit either.
func SizeLimit(config SizeLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > config.MaxBodySize {
			httputil.RespondWithError(c, apperrors.NewTooLarge(config.MaxBodySize))
			return
		}

		headerSize := 0
		for name, values := range c.Request.Header {
			headerSize += len(name)
			for _, value := range values {
				headerSize += len(value)
			}
		}
		if headerSize > config.MaxHeaderSize {
			httputil.RespondWithError(c, &apperrors.AppError{
				Code:    apperrors.ErrTooLarge,
				Message: "request headers too large",
			})
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxBodySize)
		}
		c.Next()
	}
}
