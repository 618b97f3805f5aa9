package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON envelope: every reply carries at least
// ok, failures never carry stack traces or secrets.
type Response struct {
	OK        bool              `json:"ok"`
	MessageID string            `json:"messageId,omitempty"`
	Dev       bool              `json:"dev,omitempty"`
	Error     string            `json:"error,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Success sends a success response. messageID and dev are optional markers.
func Success(c *gin.Context, code int, messageID string, dev bool) {
	c.JSON(code, Response{
		OK:        true,
		MessageID: messageID,
		Dev:       dev,
		RequestID: requestID(c),
	})
}

// Error sends an error response, optionally with field-level details.
func Error(c *gin.Context, code int, message string, details map[string]string) {
	c.JSON(code, Response{
		OK:        false,
		Error:     message,
		Details:   details,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
