package handlers

import (
	"io"
	"net/http"

	"launchboard_backend/internal/middleware"
	"launchboard_backend/internal/models"
	"launchboard_backend/internal/services"
	"launchboard_backend/internal/services/dto"
	"launchboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/user/update-payment", h.UpdatePayment)

	payment := rg.Group("/payment")
	{
		payment.POST("/complete-pending", h.CompletePending)
	}

	session := payment.Group("")
	session.Use(middleware.AuthMiddleware())
	{
		session.GET("/pending-status", h.PendingStatus)
		session.POST("/report-glitch", h.ReportGlitch)
	}

	rg.POST("/cashfree/webhook", h.CashfreeWebhook)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/payment-intents", h.ListIntents)
		admin.POST("/payment-intents/:id/verify", h.VerifyIntent)
	}
}

func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	var req dto.UpdatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.paymentService.UpdatePayment(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) CompletePending(c *gin.Context) {
	var req dto.CompletePendingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.paymentService.CompletePending(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) PendingStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	resp, err := h.paymentService.PendingStatus(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) ReportGlitch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.paymentService.ReportGlitch(db, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CashfreeWebhook acknowledges signed gateway notifications. The body is
// consumed raw because the signature covers the exact bytes.
func (h *PaymentHandler) CashfreeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unreadable webhook body"))
		return
	}

	timestamp := c.GetHeader("x-webhook-timestamp")
	signature := c.GetHeader("x-webhook-signature")

	if err := h.paymentService.HandleCashfreeWebhook(c.Request.Context(), timestamp, body, signature); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PaymentHandler) ListIntents(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	status := models.PaymentIntentStatus(c.Query("status"))

	db := h.GetDB(c)

	intents, total, err := h.paymentService.ListIntents(db, status, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"intents":  intents,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *PaymentHandler) VerifyIntent(c *gin.Context) {
	var req dto.VerifyIntentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	intent, err := h.paymentService.VerifyIntent(c.Request.Context(), db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"intent": intent})
}
