package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// register creates a new user. Duplicate email is 400, original-API parity.
func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail := "invalid request body"
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			detail = "email must be valid and password must not be empty"
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
		return
	}

	u, err := s.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// token is the OAuth2 password-flow login endpoint. It consumes form
// fields named username/password; the username is the email.
func (s *Server) token(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "username and password form fields are required"})
		return
	}

	tok, err := s.auth.LoginWithIP(c.Request.Context(), email, password, c.ClientIP())
	if err != nil {
		s.loginError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

func (s *Server) loginError(c *gin.Context, err error) {
	// Bad credentials get their own message; everything else maps as usual.
	if isUnauthorized(err) {
		abortUnauthorized(c, "Incorrect username or password")
		return
	}
	s.writeError(c, err)
}
