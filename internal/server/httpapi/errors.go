package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/taskkeep/internal/errs"
)

func isUnauthorized(err error) bool { return errors.Is(err, errs.ErrUnauthorized) }

// writeError maps service sentinels onto the HTTP surface. Anything
// unrecognized is a dependency fault: logged and surfaced as 500.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	case errors.Is(err, errs.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
	case errors.Is(err, errs.ErrUnauthorized):
		abortUnauthorized(c, "Could not validate credentials")
	case errors.Is(err, errs.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Too many login attempts"})
	default:
		s.log.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	}
}
