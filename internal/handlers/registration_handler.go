package handlers

import (
	"net/http"

	"launchboard_backend/internal/auth"
	"launchboard_backend/internal/config"
	"launchboard_backend/internal/middleware"
	"launchboard_backend/internal/services"
	"launchboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	*BaseHandler
	registrationService services.RegistrationService
	userService         services.UserService
}

func NewRegistrationHandler(base *BaseHandler, registrationService services.RegistrationService, userService services.UserService) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler:         base,
		registrationService: registrationService,
		userService:         userService,
	}
}

func (h *RegistrationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)

	me := rg.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", h.Me)
		me.GET("/transactions", h.Transactions)
	}
}

// setSessionCookie issues the HTTP-only session cookie. API clients may use
// the same token as a Bearer header instead.
func setSessionCookie(c *gin.Context, token string) {
	cfg := config.GetConfig()
	secure := cfg.Server.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Session.CookieName, token, cfg.Session.TTLMinutes*60, "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	cfg := config.GetConfig()
	c.SetCookie(cfg.Session.CookieName, "", -1, "/", "", false, true)
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.registrationService.Register(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// The new account is logged in right away.
	if token, err := auth.NewSessionToken(resp.User); err == nil {
		setSessionCookie(c, token)
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *RegistrationHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.registrationService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	setSessionCookie(c, resp.SessionToken)
	c.JSON(http.StatusOK, resp)
}

func (h *RegistrationHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RegistrationHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetByID(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *RegistrationHandler) Transactions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	txns, err := h.userService.Transactions(db, userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txns,
		"page":         page,
		"pageSize":     pageSize,
	})
}
