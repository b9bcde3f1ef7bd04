package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/uploads"
)

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB, *uploads.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.Post{},
	))

	files, err := uploads.New(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		Port:          "0",
		SessionSecret: "test-secret",
		UploadDir:     files.Dir(),
		TemplateGlob:  "../../templates/*.tmpl",
	}
	srv := New(cfg, zap.NewNop(), gdb, files)
	return srv.Router(), gdb, files
}

func do(r http.Handler, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return do(r, req, cookies)
}

func postForm(r http.Handler, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(r, req, cookies)
}

// postMultipart submits fields plus one file under the "image" field.
func postMultipart(t *testing.T, r http.Handler, path string, fields map[string]string, filename string, content []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = io.Copy(fw, bytes.NewReader(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return do(r, req, cookies)
}

// createUser inserts an account directly and logs it in over HTTP,
// returning the session cookies.
func createUser(t *testing.T, r http.Handler, gdb *gorm.DB, username string, admin bool) []*http.Cookie {
	t.Helper()
	hash, err := models.HashPassword("secret-pass")
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&models.User{
		Username: username, PasswordHash: hash, IsAdmin: admin,
	}).Error)

	w := postForm(r, "/login", url.Values{
		"username": {username},
		"password": {"secret-pass"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}
