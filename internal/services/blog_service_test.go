package services

import (
	"testing"
	"time"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func createBlogPost(t *testing.T, db *gorm.DB, slug string, published bool, publishedAt time.Time) {
	t.Helper()

	post := &models.BlogPost{
		Slug:      slug,
		Title:     "Post " + slug,
		Content:   "Body of " + slug,
		Tags:      datatypes.NewJSONSlice([]string{"announcement"}),
		Published: published,
	}
	if published {
		post.PublishedAt = &publishedAt
	}
	require.NoError(t, repositories.NewBlogRepository().Create(db, post))
}

func TestBlogList_PublishedOnlyNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewBlogService(repositories.NewBlogRepository())

	now := time.Now()
	createBlogPost(t, db, "older-post", true, now.Add(-48*time.Hour))
	createBlogPost(t, db, "newer-post", true, now.Add(-1*time.Hour))
	createBlogPost(t, db, "draft-post", false, time.Time{})

	posts, total, err := svc.List(db, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer-post", posts[0].Slug)
	assert.Equal(t, "older-post", posts[1].Slug)
}

func TestBlogGetBySlug_DraftIsHidden(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewBlogService(repositories.NewBlogRepository())

	createBlogPost(t, db, "visible", true, time.Now())
	createBlogPost(t, db, "hidden-draft", false, time.Time{})

	post, err := svc.GetBySlug(db, "visible")
	require.NoError(t, err)
	assert.Equal(t, "Post visible", post.Title)

	_, err = svc.GetBySlug(db, "hidden-draft")
	require.Error(t, err)
	assert.Equal(t, 404, appError(t, err).HTTPCode)
}
