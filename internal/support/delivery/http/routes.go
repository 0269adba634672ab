package http

import (
	"github.com/gin-gonic/gin"

	"customer-support-agent/internal/middleware"
)

// RegisterRoutes mounts the conversation endpoints on rg.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	conversations := rg.Group("/conversations", mw.RateLimit())
	{
		conversations.GET("/:conversation_id", h.GetConversation)
		conversations.POST("/:conversation_id/messages", h.PostMessage)
		conversations.POST("/:conversation_id/approval", h.ResolveApproval)
	}
}
