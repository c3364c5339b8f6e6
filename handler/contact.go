package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knockknock1010/Back/middleware"
	"github.com/knockknock1010/Back/service"
)

// contactCategoryLabels maps inquiry category keys to display labels
var contactCategoryLabels = map[string]string{
	"service": "Service usage",
	"account": "Account problem",
	"payment": "Payment / refund",
	"bug":     "Bug report",
	"etc":     "Suggestion / other",
}

type ContactHandler struct {
	store *service.ContactStore
}

func NewContactHandler(store *service.ContactStore) *ContactHandler {
	return &ContactHandler{store: store}
}

type ContactRequest struct {
	Category string `json:"category" binding:"required,max=50"`
	Title    string `json:"title" binding:"required,max=100"`
	Content  string `json:"content" binding:"required,max=2000"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=pending replied closed"`
}

// Submit records a new user inquiry
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	username := middleware.GetUsername(c)
	h.store.Submit(username, req.Category, req.Title, req.Content)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListAdmin returns inquiries for administrators, optionally filtered
// by status.
func (h *ContactHandler) ListAdmin(c *gin.Context) {
	status := c.Query("status")

	inquiries := h.store.List(status)

	result := make([]gin.H, len(inquiries))
	for i, inquiry := range inquiries {
		label, ok := contactCategoryLabels[inquiry.Category]
		if !ok {
			label = inquiry.Category
		}
		result[i] = gin.H{
			"id":             inquiry.ID,
			"username":       inquiry.Username,
			"category":       inquiry.Category,
			"category_label": label,
			"title":          inquiry.Title,
			"content":        inquiry.Content,
			"status":         inquiry.Status,
			"created_at":     inquiry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"inquiries": result})
}

// UpdateStatus moves an inquiry between pending/replied/closed
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	id := c.Param("id")
	if !h.store.UpdateStatus(id, req.Status) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "status": req.Status})
}
