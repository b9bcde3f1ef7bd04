package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/services"
)

type CatalogView struct {
	Page
	Products   []services.ProductRow
	Categories []models.Category
	Active     string // selected category filter, "" for all
}

type CategoriesView struct {
	Page
	Categories []models.Category
}

type ProductView struct {
	Page
	Product     *models.Product
	RatingLabel string
	Error       string
}

// Index lists the catalog, optionally filtered by ?category=.
func (s *Server) Index(c *gin.Context) {
	active := c.Query("category")
	rows, err := s.catalog.ListProducts(active)
	if err != nil {
		s.fail(c, err)
		return
	}
	cats, err := s.catalog.Categories()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "catalog.tmpl", CatalogView{
		Page:       s.page(c, "Catalog"),
		Products:   rows,
		Categories: cats,
		Active:     active,
	})
}

func (s *Server) Categories(c *gin.Context) {
	cats, err := s.catalog.Categories()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "categories.tmpl", CategoriesView{
		Page:       s.page(c, "Categories"),
		Categories: cats,
	})
}

func (s *Server) ShowProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	p, err := s.catalog.GetProduct(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "product.tmpl", s.productView(c, p, ""))
}

func (s *Server) productView(c *gin.Context, p *models.Product, formErr string) ProductView {
	return ProductView{
		Page:        s.page(c, p.Name),
		Product:     p,
		RatingLabel: ratingLabel(p.Reviews),
		Error:       formErr,
	}
}

func ratingLabel(reviews []models.Review) string {
	if len(reviews) == 0 {
		return "no ratings"
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(reviews)))
}
