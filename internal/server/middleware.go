package server

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Boredoom17/portfolio/internal/route"
	"github.com/Boredoom17/portfolio/internal/visits"
)

const requestIDHeader = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDHeader),
		)
	}
}

func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.RequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// trackVisits records page views with hashed client IPs. Requests sending
// "DNT: 1" are not recorded.
func (s *Server) trackVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if s.visits == nil || c.GetHeader("DNT") == "1" || c.Writer.Status() >= 400 {
			return
		}
		rt, ok := route.Parse(c.Request.URL.Path)
		if !ok {
			return
		}
		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.visits.Record(ctx, ip, ua, rt.String()); err != nil && !errors.Is(err, visits.ErrDisabled) {
				s.logger.Error("record visit", "error", err)
			}
		}()
	}
}
