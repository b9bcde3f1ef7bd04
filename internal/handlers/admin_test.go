package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestAdminGate(t *testing.T) {
	r, gdb, _ := setupServer(t)

	post := models.Post{Image: "keep.jpg", Caption: "guarded"}
	require.NoError(t, gdb.Create(&post).Error)

	postCount := func() int64 {
		var cnt int64
		require.NoError(t, gdb.Model(&models.Post{}).Count(&cnt).Error)
		return cnt
	}

	t.Run("anonymous caller is sent to login, no state change", func(t *testing.T) {
		w := postForm(r, fmt.Sprintf("/delete/%d", post.ID), url.Values{}, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.EqualValues(t, 1, postCount())

		w = get(r, "/admin", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("signed-in non-admin gets forbidden, no state change", func(t *testing.T) {
		cookies := createUser(t, r, gdb, "ivan", false)

		w := postForm(r, fmt.Sprintf("/delete/%d", post.ID), url.Values{}, cookies)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.EqualValues(t, 1, postCount())

		w = get(r, "/admin/products", cookies)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		cookies := createUser(t, r, gdb, "judy", true)
		w := get(r, "/admin", cookies)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "guarded")
	})
}

func TestPostLifecycle(t *testing.T) {
	r, gdb, files := setupServer(t)
	cookies := createUser(t, r, gdb, "admin", true)

	// create
	w := postMultipart(t, r, "/add", map[string]string{"caption": "sunset"}, "sunset.jpg", []byte("jpegdata"), cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	var post models.Post
	require.NoError(t, gdb.Where("caption = ?", "sunset").First(&post).Error)
	assert.True(t, files.Exists(post.Image))

	listing := get(r, "/admin", cookies)
	assert.Contains(t, listing.Body.String(), "sunset")

	// create without a file re-renders the form
	w = postMultipart(t, r, "/add", map[string]string{"caption": "no file"}, "", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image file is required")

	// edit caption in place
	w = postForm(r, fmt.Sprintf("/edit/%d", post.ID), url.Values{"caption": {"sunrise"}}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	var edited models.Post
	require.NoError(t, gdb.First(&edited, post.ID).Error)
	assert.Equal(t, "sunrise", edited.Caption)
	assert.Equal(t, post.Image, edited.Image)

	// delete removes the row and the backing file
	w = postForm(r, fmt.Sprintf("/delete/%d", post.ID), url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var cnt int64
	require.NoError(t, gdb.Model(&models.Post{}).Where("id = ?", post.ID).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
	assert.False(t, files.Exists(post.Image))

	listing = get(r, "/admin", cookies)
	assert.NotContains(t, listing.Body.String(), "sunrise")
}

func TestCreateProductRejectedImageLeavesNoRow(t *testing.T) {
	r, gdb, _ := setupServer(t)
	cookies := createUser(t, r, gdb, "admin", true)

	w := postMultipart(t, r, "/admin/products", map[string]string{
		"name":  "Ghost",
		"price": "9.99",
	}, "bad.gif", []byte("gifdata"), cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported image format")

	// a failed create must not persist anything the admin would
	// duplicate on resubmit
	var cnt int64
	require.NoError(t, gdb.Model(&models.Product{}).Where("name = ?", "Ghost").Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
	require.NoError(t, gdb.Model(&models.ProductImage{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
}

func TestProductLifecycle(t *testing.T) {
	r, gdb, files := setupServer(t)
	cookies := createUser(t, r, gdb, "admin", true)

	books := models.Category{Name: "Books"}
	require.NoError(t, gdb.Create(&books).Error)

	// create with an image
	w := postMultipart(t, r, "/admin/products", map[string]string{
		"name":        "Paperback",
		"description": "a fine read",
		"price":       "9.99",
		"category_id": fmt.Sprint(books.ID),
	}, "cover.jpg", []byte("jpegdata"), cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var p models.Product
	require.NoError(t, gdb.Preload("Images").Where("name = ?", "Paperback").First(&p).Error)
	assert.Equal(t, 999, p.PriceCents)
	require.NotNil(t, p.CategoryID)
	require.Len(t, p.Images, 1)
	assert.Equal(t, fmt.Sprintf("%d_1.jpg", p.ID), p.Images[0].Filename)
	assert.True(t, files.Exists(p.Images[0].Filename))

	// bad price re-renders the form
	w = postMultipart(t, r, "/admin/products", map[string]string{
		"name": "Broken", "price": "not-a-price",
	}, "", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// edit in place
	w = postForm(r, fmt.Sprintf("/admin/products/%d", p.ID), url.Values{
		"name":  {"Hardcover"},
		"price": {"19.99"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	var edited models.Product
	require.NoError(t, gdb.First(&edited, p.ID).Error)
	assert.Equal(t, "Hardcover", edited.Name)
	assert.Equal(t, 1999, edited.PriceCents)
	assert.Nil(t, edited.CategoryID) // cleared by the empty select

	// delete removes row, image rows and files
	w = postForm(r, fmt.Sprintf("/admin/products/%d/delete", p.ID), url.Values{}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	var cnt int64
	require.NoError(t, gdb.Model(&models.Product{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
	assert.False(t, files.Exists(fmt.Sprintf("%d_1.jpg", p.ID)))
}
