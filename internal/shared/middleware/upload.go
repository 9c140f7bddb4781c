package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUploadLimit holds the largest accepted file part in bytes
const ContextUploadLimit = "upload_limit"

// multipart boundaries and headers on top of the file itself
const multipartOverhead = 1 << 20

// UploadLimit caps multipart request bodies and records maxBytes for utils.FormFile.
// Other requests pass through untouched.
func UploadLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			c.Set(ContextUploadLimit, maxBytes)
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)
		}
		c.Next()
	}
}
