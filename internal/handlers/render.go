package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/apperr"
	"storefront/internal/middleware"
	"storefront/internal/session"
)

// Page carries the fields every template needs.
type Page struct {
	Title   string
	Account *session.Account
}

func (s *Server) page(c *gin.Context, title string) Page {
	p := Page{Title: title}
	if acct, ok := middleware.CurrentAccount(c); ok {
		p.Account = &acct
	}
	return p
}

// ErrorView renders error.tmpl.
type ErrorView struct {
	Page
	Message string
}

// fail is the single boundary for errors that are not form re-renders:
// not-found gets a 404 page, everything else is logged and becomes a
// generic 500 page.
func (s *Server) fail(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		c.HTML(http.StatusNotFound, "error.tmpl", ErrorView{
			Page:    s.page(c, "Not found"),
			Message: apperr.Message(err),
		})
	default:
		s.log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.HTML(http.StatusInternalServerError, "error.tmpl", ErrorView{
			Page:    s.page(c, "Error"),
			Message: "something went wrong",
		})
	}
	c.Abort()
}

// formStatus maps a form-class error to its HTTP status. ok is false
// for errors that should go through fail instead.
func formStatus(err error) (status int, ok bool) {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		return http.StatusBadRequest, true
	case apperr.Conflict:
		return http.StatusConflict, true
	case apperr.Auth:
		return http.StatusUnauthorized, true
	}
	return 0, false
}

// param helpers

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFoundf("not found")
	}
	return uint(id), nil
}

// parsePriceCents turns a "12.34"-style form value into cents.
// A comma decimal separator is accepted.
func parsePriceCents(v string) (int, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	if v == "" {
		return 0, apperr.Validationf("price is required")
	}
	// Atoi("-0") is 0, so the sign must be rejected up front
	if strings.HasPrefix(v, "-") {
		return 0, apperr.Validationf("invalid price")
	}
	whole, frac, _ := strings.Cut(v, ".")
	dollars, err := strconv.Atoi(whole)
	if err != nil || dollars < 0 {
		return 0, apperr.Validationf("invalid price")
	}
	cents := 0
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		if len(frac) == 1 {
			frac += "0"
		}
		if cents, err = strconv.Atoi(frac); err != nil || cents < 0 {
			return 0, apperr.Validationf("invalid price")
		}
	}
	return dollars*100 + cents, nil
}
