package handlers

import (
	"net/http"

	"launchboard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	*BaseHandler
	blogService services.BlogService
}

func NewBlogHandler(base *BaseHandler, blogService services.BlogService) *BlogHandler {
	return &BlogHandler{
		BaseHandler: base,
		blogService: blogService,
	}
}

func (h *BlogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	blog := rg.Group("/blog")
	{
		blog.GET("", h.ListPosts)
		blog.GET("/:slug", h.GetPost)
	}
}

func (h *BlogHandler) ListPosts(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	posts, total, err := h.blogService.List(db, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *BlogHandler) GetPost(c *gin.Context) {
	db := h.GetDB(c)

	post, err := h.blogService.GetBySlug(db, c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}
