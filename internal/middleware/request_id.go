package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// ContextRequestID is the gin context key the request id is stored under.
const ContextRequestID = "request_id"

// RequestID tags every request with an id for log correlation. A
// caller-supplied X-Request-Id is echoed back; otherwise a fresh UUID is
// assigned.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set(ContextRequestID, id)
		c.Next()
	}
}
