package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

type AdminPostsView struct {
	Page
	Posts []models.Post
}

type PostFormView struct {
	Page
	Mode    string // "create" or "edit"
	Post    *models.Post
	Caption string
	Error   string
}

func (s *Server) AdminPosts(c *gin.Context) {
	posts, err := s.posts.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_posts.tmpl", AdminPostsView{
		Page:  s.page(c, "Admin"),
		Posts: posts,
	})
}

func (s *Server) NewPost(c *gin.Context) {
	c.HTML(http.StatusOK, "post_form.tmpl", PostFormView{
		Page: s.page(c, "New post"),
		Mode: "create",
	})
}

func (s *Server) CreatePost(c *gin.Context) {
	caption := strings.TrimSpace(c.PostForm("caption"))
	var fh *multipart.FileHeader
	if f, err := c.FormFile("image"); err == nil {
		fh = f
	}

	if _, err := s.posts.Create(caption, fh); err != nil {
		if status, ok := formStatus(err); ok {
			c.HTML(status, "post_form.tmpl", PostFormView{
				Page:    s.page(c, "New post"),
				Mode:    "create",
				Caption: caption,
				Error:   apperr.Message(err),
			})
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *Server) EditPost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	p, err := s.posts.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "post_form.tmpl", PostFormView{
		Page:    s.page(c, "Edit post"),
		Mode:    "edit",
		Post:    p,
		Caption: p.Caption,
	})
}

func (s *Server) UpdatePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	caption := strings.TrimSpace(c.PostForm("caption"))
	if _, err := s.posts.UpdateCaption(id, caption); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *Server) DeletePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.posts.Delete(id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}
