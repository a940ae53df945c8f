package handlers

import (
	"net/http"
	"strings"

	"launchboard_backend/internal/middleware"
	"launchboard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	*BaseHandler
	referralService services.ReferralService
}

func NewReferralHandler(base *BaseHandler, referralService services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		BaseHandler:     base,
		referralService: referralService,
	}
}

func (h *ReferralHandler) RegisterRoutes(rg *gin.RouterGroup) {
	referral := rg.Group("/referral")
	referral.Use(middleware.AuthMiddleware())
	{
		referral.GET("/stats", h.Stats)
	}
}

func (h *ReferralHandler) Stats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	currency := strings.ToUpper(c.Query("currency"))
	db := h.GetDB(c)

	stats, err := h.referralService.Stats(c.Request.Context(), db, userID, currency)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
