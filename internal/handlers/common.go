package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// parseUUIDParam reads a UUID path parameter, writing a 400 response on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// guideIDFromContext reads the guide id set by the auth middleware
func guideIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("guide_id")
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{"error": "Guide account required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Guide account required"})
		return uuid.Nil, false
	}
	return id, true
}

// userIDFromContext reads the authenticated user id set by the auth middleware
func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return uuid.Nil, false
	}
	return id, true
}

// notFoundOrInternal maps record-not-found to 404 and everything else to 500
func notFoundOrInternal(c *gin.Context, err error, resource string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load " + resource})
}
