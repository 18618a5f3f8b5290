package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Response messages. Internal error detail never reaches the client; it is
// only written to the log.
const (
	msgServerError = "Server Error"
	msgNotFound    = "Property not found"
	msgInvalid     = "Invalid request data"
	msgAdded       = "Product added successfully"
	msgUpdated     = "Property updated successfully"
	msgRemoved     = "Property removed successfully"
)

func respondMessage(c *gin.Context, status int, success bool, message string) {
	c.JSON(status, gin.H{"success": success, "message": message})
}

func respondServerError(c *gin.Context) {
	respondMessage(c, http.StatusInternalServerError, false, msgServerError)
}

// NoRouteHandler answers unrouted paths with the standard envelope
func NoRouteHandler(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Info("Resource not found")
		respondMessage(c, http.StatusNotFound, false, "Resource not found")
	}
}

// RecoveryHandler catches panics that escape a handler, logs them and emits
// the generic 500 envelope.
func RecoveryHandler(log *logrus.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.WithFields(logrus.Fields{
			"error":  recovered,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("Unhandled panic in request handler")
		respondServerError(c)
		c.Abort()
	}
}
