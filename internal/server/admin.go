package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// adminAuth accepts "Authorization: Bearer <token>" only.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.opts.AdminToken)) != 1 {
			s.logger.Warn("rejected admin request", "client", s.clientHash(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func (s *Server) clientHash(c *gin.Context) string {
	if s.visits == nil {
		return ""
	}
	return s.visits.HashIP(c.ClientIP())
}

// adminRoutes are only mounted when both a token and a visit store exist.
func (s *Server) adminRoutes(r *gin.Engine) {
	if s.opts.AdminToken == "" || s.visits == nil {
		return
	}
	admin := r.Group("/admin", s.adminAuth())

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.visits.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("load admin stats", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.visits.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("export admin stats", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=portfolio-stats.json")
		s.logger.Info("admin stats exported", "client", s.clientHash(c))
		c.JSON(http.StatusOK, stats)
	})
}
