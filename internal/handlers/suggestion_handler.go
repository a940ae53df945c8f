package handlers

import (
	"net/http"

	"launchboard_backend/internal/middleware"
	"launchboard_backend/internal/services"
	"launchboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	*BaseHandler
	suggestionService services.SuggestionService
}

func NewSuggestionHandler(base *BaseHandler, suggestionService services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{
		BaseHandler:       base,
		suggestionService: suggestionService,
	}
}

func (h *SuggestionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suggestions := rg.Group("/suggestions")
	{
		suggestions.GET("", h.List)
		suggestions.GET("/best/:period", h.Best)
		suggestions.GET("/:id", h.Get)
		suggestions.GET("/:id/comments", h.ListComments)
	}

	open := rg.Group("/suggestions")
	open.Use(middleware.OptionalAuthMiddleware())
	{
		open.POST("", h.Create)
		open.POST("/:id/reactions", h.React)
		open.POST("/:id/comments", h.Comment)
	}

	authed := rg.Group("/suggestions")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.PUT("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
		authed.POST("/:id/vote", h.Vote)
	}

	admin := rg.Group("/admin/suggestions")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/:id/award", h.Award)
	}
}

// optionalUserID returns a pointer to the session user id, nil for guests.
func optionalUserID(c *gin.Context) *string {
	if id := middleware.GetUserID(c); id != "" {
		return &id
	}
	return nil
}

func (h *SuggestionHandler) Create(c *gin.Context) {
	var req dto.CreateSuggestionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	suggestion, err := h.suggestionService.Create(db, optionalUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"suggestion": suggestion})
}

func (h *SuggestionHandler) Get(c *gin.Context) {
	db := h.GetDB(c)

	suggestion, err := h.suggestionService.Get(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

func (h *SuggestionHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	suggestions, total, err := h.suggestionService.List(db, c.Query("category"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"total":       total,
		"page":        page,
		"pageSize":    pageSize,
	})
}

func (h *SuggestionHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSuggestionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	isAdmin := c.GetBool("isAdmin")

	suggestion, err := h.suggestionService.Update(db, c.Param("id"), userID, isAdmin, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

func (h *SuggestionHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	isAdmin := c.GetBool("isAdmin")

	if err := h.suggestionService.Delete(db, c.Param("id"), userID, isAdmin); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SuggestionHandler) Vote(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	suggestion, err := h.suggestionService.Vote(db, c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

func (h *SuggestionHandler) Best(c *gin.Context) {
	period := c.Param("period")
	limit := ParseQueryInt(c, "limit", 10)

	db := h.GetDB(c)

	suggestions, err := h.suggestionService.Best(db, period, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": period, "suggestions": suggestions})
}

func (h *SuggestionHandler) React(c *gin.Context) {
	var req dto.ReactionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID := optionalUserID(c)
	var guestSessionID *string
	if userID == nil {
		if guest := c.GetHeader("X-Guest-Session"); guest != "" {
			guestSessionID = &guest
		}
	}

	db := h.GetDB(c)

	reaction, err := h.suggestionService.React(db, c.Param("id"), userID, guestSessionID, req.ReactionType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reaction": reaction})
}

func (h *SuggestionHandler) Comment(c *gin.Context) {
	var req dto.CommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	comment, err := h.suggestionService.Comment(db, c.Param("id"), optionalUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (h *SuggestionHandler) ListComments(c *gin.Context) {
	db := h.GetDB(c)

	comments, err := h.suggestionService.ListComments(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *SuggestionHandler) Award(c *gin.Context) {
	var req dto.AwardSuggestionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	suggestion, err := h.suggestionService.Award(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
