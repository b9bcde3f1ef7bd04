// Package handlers wires HTTP routes to the service layer and
// renders typed view models through the template set.
package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/internal/uploads"
)

type Server struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	files *uploads.Store

	accounts *services.Accounts
	catalog  *services.Catalog
	products *services.Products
	posts    *services.Posts
	reviews  *services.Reviews
}

func New(cfg *config.Config, log *zap.Logger, gdb *gorm.DB, files *uploads.Store) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		db:       gdb,
		files:    files,
		accounts: services.NewAccounts(gdb),
		catalog:  services.NewCatalog(gdb),
		products: services.NewProducts(gdb, files, log),
		posts:    services.NewPosts(gdb, files, log),
		reviews:  services.NewReviews(gdb),
	}
}

// Router builds the gin engine: sessions, templates, static dirs and
// every route of the shop and the photo-blog admin panel.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(s.log))

	secret := s.cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		s.log.Warn("SESSION_SECRET is empty, generated a volatile one; sessions will not survive restarts")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("storefront_session", store))

	r.SetFuncMap(template.FuncMap{
		"price": func(cents int) string { return fmt.Sprintf("%.2f", float64(cents)/100.0) },
	})
	r.LoadHTMLGlob(s.cfg.TemplateGlob)

	r.Static("/uploads", s.files.Dir())
	r.Static("/static", "./static")

	r.GET("/healthz", s.Health)

	// public shop
	r.GET("/", s.Index)
	r.GET("/categories", s.Categories)
	r.GET("/products/:id", s.ShowProduct)
	r.GET("/register", s.ShowRegister)
	r.POST("/register", s.Register)
	r.GET("/login", s.ShowLogin)
	r.POST("/login", s.Login)
	r.GET("/logout", s.Logout)

	// signed-in users
	r.POST("/products/:id/reviews", middleware.RequireUser(), s.CreateReview)

	// photo-blog admin panel
	admin := r.Group("/", middleware.RequireAdmin())
	admin.GET("/admin", s.AdminPosts)
	admin.GET("/add", s.NewPost)
	admin.POST("/add", s.CreatePost)
	admin.GET("/edit/:id", s.EditPost)
	admin.POST("/edit/:id", s.UpdatePost)
	admin.POST("/delete/:id", s.DeletePost)

	// shop admin
	admin.GET("/admin/products", s.AdminProducts)
	admin.GET("/admin/products/new", s.NewProduct)
	admin.POST("/admin/products", s.CreateProduct)
	admin.GET("/admin/products/:id/edit", s.EditProduct)
	admin.POST("/admin/products/:id", s.UpdateProduct)
	admin.POST("/admin/products/:id/delete", s.DeleteProduct)
	admin.POST("/admin/products/:id/images", s.AttachProductImage)

	return r
}

func (s *Server) Health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
