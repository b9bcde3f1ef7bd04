package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/apperr"
	"storefront/internal/middleware"
)

// CreateReview handles POST /products/:id/reviews (signed-in users).
func (s *Server) CreateReview(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	acct, ok := middleware.CurrentAccount(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	rating, _ := strconv.Atoi(strings.TrimSpace(c.PostForm("rating")))
	comment := strings.TrimSpace(c.PostForm("comment"))

	if _, err := s.reviews.Create(id, acct.UserID, rating, comment); err != nil {
		if status, ok := formStatus(err); ok {
			p, loadErr := s.catalog.GetProduct(id)
			if loadErr != nil {
				s.fail(c, loadErr)
				return
			}
			c.HTML(status, "product.tmpl", s.productView(c, p, apperr.Message(err)))
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/products/%d", id))
}
