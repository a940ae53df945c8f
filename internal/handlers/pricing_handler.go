package handlers

import (
	"net/http"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/services"
	"launchboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	*BaseHandler
	pricingService services.PricingService
}

func NewPricingHandler(base *BaseHandler, pricingService services.PricingService) *PricingHandler {
	return &PricingHandler{
		BaseHandler:    base,
		pricingService: pricingService,
	}
}

func (h *PricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pricing := rg.Group("/pricing")
	{
		pricing.GET("/registration", h.CurrentPrice)
		pricing.GET("/dynamic-stats", h.DynamicStats)
	}
}

func queryDefaults(q *dto.PricingQuery) (models.StakeholderType, string) {
	st := models.StakeholderType(q.StakeholderType)
	if st == "" {
		st = models.StakeholderEcosystem
	}
	currency := q.Currency
	if currency == "" {
		currency = "INR"
	}
	return st, currency
}

func (h *PricingHandler) CurrentPrice(c *gin.Context) {
	var q dto.PricingQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}
	st, currency := queryDefaults(&q)

	db := h.GetDB(c)

	quote, err := h.pricingService.GetCurrentPrice(db, st, currency)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *PricingHandler) DynamicStats(c *gin.Context) {
	var q dto.PricingQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}
	st, _ := queryDefaults(&q)

	db := h.GetDB(c)

	stats, err := h.pricingService.GetDynamicStats(db, st)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
