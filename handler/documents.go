package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knockknock1010/Back/middleware"
	"github.com/knockknock1010/Back/pkg/logger"
	"github.com/knockknock1010/Back/service"
)

type DocumentHandler struct {
	documents    *service.DocumentStore
	minioService *service.MinioService
}

func NewDocumentHandler(documents *service.DocumentStore, minioSvc *service.MinioService) *DocumentHandler {
	return &DocumentHandler{documents: documents, minioService: minioSvc}
}

// List returns all reports for the current user
func (h *DocumentHandler) List(c *gin.Context) {
	username := middleware.GetUsername(c)
	records := h.documents.GetByOwner(username)

	// Return without the analysis payload for list view
	result := make([]gin.H, len(records))
	for i, record := range records {
		result[i] = gin.H{
			"id":         record.Document.ID,
			"filename":   record.Document.Filename,
			"category":   record.Document.Category,
			"status":     record.Document.Status,
			"risk_level": record.Analysis.RiskLevel,
			"created_at": record.Document.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"documents": result})
}

// Get returns a single document record
func (h *DocumentHandler) Get(c *gin.Context) {
	username := middleware.GetUsername(c)
	id := c.Param("id")

	record := h.documents.Get(id)
	if record == nil || record.Document.Owner != username {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, record.Document)
}

// GetAnalysis returns the stored clause and analysis for a document
func (h *DocumentHandler) GetAnalysis(c *gin.Context) {
	username := middleware.GetUsername(c)
	id := c.Param("id")

	record := h.documents.Get(id)
	if record == nil || record.Document.Owner != username {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clause":   record.Clause,
		"analysis": record.Analysis,
	})
}

// Delete deletes a document record
func (h *DocumentHandler) Delete(c *gin.Context) {
	username := middleware.GetUsername(c)
	id := c.Param("id")

	record := h.documents.Get(id)
	if record == nil || record.Document.Owner != username {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	h.documents.Delete(id)

	// Best-effort cleanup of the archived original
	if h.minioService != nil && record.Document.ArchiveObject != "" {
		if err := h.minioService.RemoveOriginal(c.Request.Context(), record.Document.ArchiveObject); err != nil {
			logger.Warn(c.Request.Context(), "failed to remove archived original",
				"object", record.Document.ArchiveObject, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
