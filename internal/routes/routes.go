package routes

import (
	"launchboard_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers every HTTP route of the application.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api")
	{
		appHandlers.Registration.RegisterRoutes(api)
		appHandlers.Pricing.RegisterRoutes(api)
		appHandlers.Payment.RegisterRoutes(api)
		appHandlers.Referral.RegisterRoutes(api)
		appHandlers.Suggestion.RegisterRoutes(api)
		appHandlers.User.RegisterRoutes(api)
		appHandlers.Blog.RegisterRoutes(api)
	}
}
