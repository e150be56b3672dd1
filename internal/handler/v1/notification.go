package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ayursutra/ayursutra/internal/notification"
)

type NotificationHandler struct {
	hub *notification.Hub
}

func NewNotificationHandler(hub *notification.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

func (h *NotificationHandler) List(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	respondOK(c, h.hub.For(claims.UserID).List())
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	respondOK(c, gin.H{"unread_count": h.hub.For(claims.UserID).UnreadCount()})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	h.hub.For(claims.UserID).MarkAsRead(c.Param("id"))
	respondOK(c, gin.H{"marked": c.Param("id")})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	h.hub.For(claims.UserID).MarkAllAsRead()
	respondOK(c, gin.H{"marked": "all"})
}

func (h *NotificationHandler) Clear(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	h.hub.For(claims.UserID).Clear(c.Param("id"))
	respondOK(c, gin.H{"cleared": c.Param("id")})
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	h.hub.For(claims.UserID).ClearAll()
	respondOK(c, gin.H{"cleared": "all"})
}
