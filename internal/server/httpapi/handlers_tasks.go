package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/and161185/taskkeep/internal/model"
)

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// owner returns the authenticated user placed by requireAuth.
func (s *Server) owner(c *gin.Context) (*model.User, bool) {
	u, ok := currentUser(c)
	if !ok {
		abortUnauthorized(c, "Could not validate credentials")
	}
	return u, ok
}

func (s *Server) createTask(c *gin.Context) {
	u, ok := s.owner(c)
	if !ok {
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
		return
	}

	t, err := s.tasks.Create(c.Request.Context(), u.ID, req.Title, req.Description)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) listTasks(c *gin.Context) {
	u, ok := s.owner(c)
	if !ok {
		return
	}
	page := queryInt64(c, "page", 1)
	size := queryInt64(c, "size", 10)

	p, err := s.tasks.List(c.Request.Context(), u.ID, page, size)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) getTask(c *gin.Context) {
	u, ok := s.owner(c)
	if !ok {
		return
	}
	t, err := s.tasks.Get(c.Request.Context(), u.ID, c.Param("taskID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) updateTask(c *gin.Context) {
	u, ok := s.owner(c)
	if !ok {
		return
	}
	var upd model.TaskUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
		return
	}

	t, err := s.tasks.Update(c.Request.Context(), u.ID, c.Param("taskID"), upd)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTask(c *gin.Context) {
	u, ok := s.owner(c)
	if !ok {
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), u.ID, c.Param("taskID")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) completeTask(c *gin.Context)   { s.setCompleted(c, true) }
func (s *Server) uncompleteTask(c *gin.Context) { s.setCompleted(c, false) }

func (s *Server) setCompleted(c *gin.Context, completed bool) {
	u, ok := s.owner(c)
	if !ok {
		return
	}
	t, err := s.tasks.SetCompleted(c.Request.Context(), u.ID, c.Param("taskID"), completed)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// queryInt64 parses a positive query parameter, falling back to def.
func queryInt64(c *gin.Context, name string, def int64) int64 {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || v < 1 {
		return def
	}
	return v
}
