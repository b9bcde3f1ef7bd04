package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/uploads"
)

type AdminProductsView struct {
	Page
	Products []models.Product
}

// ProductForm echoes the submitted values back into the form.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
}

type ProductFormView struct {
	Page
	Mode       string // "create" or "edit"
	Product    *models.Product
	Categories []models.Category
	Form       ProductForm
	Error      string
}

func (s *Server) AdminProducts(c *gin.Context) {
	items, err := s.products.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_products.tmpl", AdminProductsView{
		Page:     s.page(c, "Products"),
		Products: items,
	})
}

func (s *Server) NewProduct(c *gin.Context) {
	view, err := s.productFormView(c, "create", nil, ProductForm{}, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "product_form.tmpl", view)
}

func (s *Server) CreateProduct(c *gin.Context) {
	form := readProductForm(c)
	// image is optional on the create form
	fh, ferr := c.FormFile("image")
	if ferr != nil {
		fh = nil
	}

	in, err := s.productInput(form)
	if err == nil && fh != nil {
		// reject a bad upload before any row exists
		_, err = uploads.Ext(fh)
	}
	if err != nil {
		s.renderProductFormError(c, "create", nil, form, err)
		return
	}

	p, err := s.products.Create(in)
	if err != nil {
		s.renderProductFormError(c, "create", nil, form, err)
		return
	}
	if fh != nil {
		if _, err := s.products.AttachImage(p.ID, fh); err != nil {
			// the form re-renders as failed, so the row must not outlive it
			if delErr := s.products.Delete(p.ID); delErr != nil {
				s.log.Warn("could not roll back product after failed image attach",
					zap.Uint("product_id", p.ID), zap.Error(delErr))
			}
			s.renderProductFormError(c, "create", nil, form, err)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (s *Server) EditProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	p, err := s.products.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	form := ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       formatPrice(p.PriceCents),
	}
	if p.CategoryID != nil {
		form.CategoryID = strconv.FormatUint(uint64(*p.CategoryID), 10)
	}
	view, err := s.productFormView(c, "edit", p, form, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "product_form.tmpl", view)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	p, err := s.products.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	form := readProductForm(c)
	in, err := s.productInput(form)
	if err == nil {
		if _, err = s.products.Update(id, in); err == nil {
			c.Redirect(http.StatusSeeOther, "/admin/products")
			return
		}
	}
	s.renderProductFormError(c, "edit", p, form, err)
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.products.Delete(id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (s *Server) AttachProductImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var fh *multipart.FileHeader
	if f, ferr := c.FormFile("image"); ferr == nil {
		fh = f
	}
	if _, err := s.products.AttachImage(id, fh); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// helpers

func readProductForm(c *gin.Context) ProductForm {
	return ProductForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Price:       strings.TrimSpace(c.PostForm("price")),
		CategoryID:  strings.TrimSpace(c.PostForm("category_id")),
	}
}

func (s *Server) productInput(form ProductForm) (services.ProductInput, error) {
	cents, err := parsePriceCents(form.Price)
	if err != nil {
		return services.ProductInput{}, err
	}
	in := services.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		PriceCents:  cents,
	}
	if form.CategoryID != "" {
		id, err := strconv.ParseUint(form.CategoryID, 10, 64)
		if err != nil {
			return services.ProductInput{}, apperr.Validationf("unknown category")
		}
		cid := uint(id)
		in.CategoryID = &cid
	}
	return in, nil
}

func (s *Server) productFormView(c *gin.Context, mode string, p *models.Product, form ProductForm, formErr string) (ProductFormView, error) {
	cats, err := s.catalog.Categories()
	if err != nil {
		return ProductFormView{}, err
	}
	title := "New product"
	if mode == "edit" {
		title = "Edit product"
	}
	return ProductFormView{
		Page:       s.page(c, title),
		Mode:       mode,
		Product:    p,
		Categories: cats,
		Form:       form,
		Error:      formErr,
	}, nil
}

func (s *Server) renderProductFormError(c *gin.Context, mode string, p *models.Product, form ProductForm, err error) {
	status, ok := formStatus(err)
	if !ok {
		s.fail(c, err)
		return
	}
	view, verr := s.productFormView(c, mode, p, form, apperr.Message(err))
	if verr != nil {
		s.fail(c, verr)
		return
	}
	c.HTML(status, "product_form.tmpl", view)
}

func formatPrice(cents int) string {
	return strconv.FormatFloat(float64(cents)/100.0, 'f', 2, 64)
}
