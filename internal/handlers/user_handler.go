package handlers

import (
	"net/http"

	"launchboard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leaderboard", h.Leaderboard)
}

func (h *UserHandler) Leaderboard(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	entries, total, err := h.userService.Leaderboard(db, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":  entries,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
