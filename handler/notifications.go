package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knockknock1010/Back/middleware"
	"github.com/knockknock1010/Back/model"
	"github.com/knockknock1010/Back/service"
)

type NotificationHandler struct {
	store *service.NotificationStore
}

func NewNotificationHandler(store *service.NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns the user's most recent notifications
func (h *NotificationHandler) List(c *gin.Context) {
	username := middleware.GetUsername(c)
	notifications := h.store.ListByUser(username, false, 100)
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// ListUnread returns the user's unread notifications
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	username := middleware.GetUsername(c)
	notifications := h.store.ListByUser(username, true, 20)
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead marks a single notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	username := middleware.GetUsername(c)
	id := c.Param("id")

	if !h.store.MarkRead(username, id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAllRead marks every notification of the user as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	username := middleware.GetUsername(c)
	h.store.MarkAllRead(username)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSettings returns the user's notification preferences
func (h *NotificationHandler) GetSettings(c *gin.Context) {
	username := middleware.GetUsername(c)
	c.JSON(http.StatusOK, h.store.Settings(username))
}

// UpdateSettings replaces the user's notification preferences
func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	var settings model.NotificationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	username := middleware.GetUsername(c)
	h.store.UpdateSettings(username, settings)

	c.JSON(http.StatusOK, settings)
}
