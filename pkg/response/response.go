package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Helpers shaping every JSON body the API emits. Error bodies stay uniform
// and opaque; internal detail never crosses this boundary.

// Message writes {"message": msg}
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// MessageWith writes a message plus extra top-level fields,
// e.g. {"message": ..., "task": {...}}
func MessageWith(c *gin.Context, status int, msg string, fields gin.H) {
	body := gin.H{"message": msg}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// ValidationErrors writes 400 {"errors": {field: message}}
func ValidationErrors(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": details})
}

// AbortMessage writes {"message": msg} and aborts the handler chain.
// Used by middleware rejecting a request before any handler logic runs.
func AbortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
