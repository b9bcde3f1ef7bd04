package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/apperr"
	"storefront/internal/session"
)

// AuthFormView backs both the register and the login page.
type AuthFormView struct {
	Page
	Error    string
	Username string
}

func (s *Server) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", AuthFormView{Page: s.page(c, "Register")})
}

func (s *Server) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	_, err := s.accounts.Register(username, password)
	if err != nil {
		if status, ok := formStatus(err); ok {
			c.HTML(status, "register.tmpl", AuthFormView{
				Page:     s.page(c, "Register"),
				Error:    apperr.Message(err),
				Username: username,
			})
			return
		}
		s.fail(c, err)
		return
	}

	s.log.Info("user registered", zap.String("username", username))
	c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", AuthFormView{Page: s.page(c, "Login")})
}

func (s *Server) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	u, err := s.accounts.Login(username, password)
	if err != nil {
		if status, ok := formStatus(err); ok {
			c.HTML(status, "login.tmpl", AuthFormView{
				Page:     s.page(c, "Login"),
				Error:    apperr.Message(err),
				Username: username,
			})
			return
		}
		s.fail(c, err)
		return
	}

	if err := session.Issue(c, u); err != nil {
		s.fail(c, apperr.Wrap(err, "could not save session"))
		return
	}
	s.log.Info("user logged in", zap.String("username", u.Username), zap.Uint("user_id", u.ID))
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) Logout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		s.log.Warn("could not clear session", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}
