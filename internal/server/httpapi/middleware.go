package httpapi

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bearerToken extracts the token from an "Authorization: Bearer <t>" header.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		t := strings.TrimSpace(header[7:])
		if t != "" {
			return t, nil
		}
	}
	return "", errors.New("no bearer token")
}

// requireAuth resolves the bearer token into a user and aborts with a
// uniform 401 on any failure.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}
		u, err := s.auth.ResolveToken(c.Request.Context(), tok)
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}
		withUser(c, u)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

// RequestLogger returns middleware for structured request logging.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// metadata only, no payloads
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}

// Recovery returns middleware that recovers from panics.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
			}
		}()
		c.Next()
	}
}
