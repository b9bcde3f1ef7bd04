package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/uploads"
)

func setupPosts(t *testing.T) (*Posts, *uploads.Store) {
	t.Helper()
	gdb := setupTestDB(t)
	files, err := uploads.New(t.TempDir())
	require.NoError(t, err)
	return NewPosts(gdb, files, zap.NewNop()), files
}

func TestCreatePost(t *testing.T) {
	t.Run("stores file and row", func(t *testing.T) {
		s, files := setupPosts(t)

		p, err := s.Create("first snap", fileHeader(t, "snap.jpg", []byte("jpegdata")))
		require.NoError(t, err)
		assert.Equal(t, "first snap", p.Caption)
		assert.True(t, files.Exists(p.Image))
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("image is required", func(t *testing.T) {
		s, _ := setupPosts(t)

		_, err := s.Create("no image", nil)
		require.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))

		posts, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		s, _ := setupPosts(t)

		_, err := s.Create("bad ext", fileHeader(t, "clip.gif", []byte("gifdata")))
		require.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	})
}

func TestUpdatePostCaption(t *testing.T) {
	s, _ := setupPosts(t)

	p, err := s.Create("before", fileHeader(t, "snap.jpg", []byte("jpegdata")))
	require.NoError(t, err)

	updated, err := s.UpdateCaption(p.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Caption)
	assert.Equal(t, p.Image, updated.Image) // image never changes on edit

	_, err = s.UpdateCaption(9999, "nope")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeletePost(t *testing.T) {
	t.Run("removes row and file together", func(t *testing.T) {
		s, files := setupPosts(t)

		p, err := s.Create("doomed", fileHeader(t, "snap.jpg", []byte("jpegdata")))
		require.NoError(t, err)
		require.True(t, files.Exists(p.Image))

		require.NoError(t, s.Delete(p.ID))

		posts, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.False(t, files.Exists(p.Image))
	})

	t.Run("tolerates an already-missing file", func(t *testing.T) {
		s, files := setupPosts(t)

		p, err := s.Create("doomed", fileHeader(t, "snap.jpg", []byte("jpegdata")))
		require.NoError(t, err)
		require.NoError(t, os.Remove(files.Path(p.Image)))

		require.NoError(t, s.Delete(p.ID))

		posts, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("unknown post", func(t *testing.T) {
		s, _ := setupPosts(t)
		err := s.Delete(9999)
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestListPostsNewestFirst(t *testing.T) {
	s, _ := setupPosts(t)
	gdb := s.db

	older := models.Post{Image: "a.jpg", Caption: "older"}
	newer := models.Post{Image: "b.jpg", Caption: "newer"}
	require.NoError(t, gdb.Create(&older).Error)
	require.NoError(t, gdb.Create(&newer).Error)

	posts, err := s.List()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Caption)
	assert.Equal(t, "older", posts[1].Caption)
}
