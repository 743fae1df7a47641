package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/and161185/taskkeep/internal/model"
)

const userKey = "tk.user"

// withUser stores the authenticated user in the request context.
func withUser(c *gin.Context, u *model.User) {
	c.Set(userKey, u)
}

// currentUser fetches the authenticated user from the request context.
func currentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*model.User)
	return u, ok
}
