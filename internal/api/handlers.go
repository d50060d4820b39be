package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roscout/internal/contact"
	"roscout/internal/roblox"
)

func (s *Server) submitContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing fields"})
		return
	}

	if _, err := s.store.Append(req.Name, req.Email, req.Message); err != nil {
		if errors.Is(err, contact.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// listMessages is for local inspection only; no access control.
func (s *Server) listMessages(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List())
}

func (s *Server) lookupUser(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username"})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	profile, err := s.agg.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, roblox.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("User %q not found", username)})
			return
		}
		s.log.Error("lookup_failed", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Roblox data"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
