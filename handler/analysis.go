package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/knockknock1010/Back/middleware"
	"github.com/knockknock1010/Back/model"
	"github.com/knockknock1010/Back/pkg/logger"
	"github.com/knockknock1010/Back/service"
)

type AnalysisHandler struct {
	advisor       *service.AnalysisService
	minioService  *service.MinioService
	documents     *service.DocumentStore
	notifications *service.NotificationStore
}

func NewAnalysisHandler(advisor *service.AnalysisService, minioSvc *service.MinioService, documents *service.DocumentStore, notifications *service.NotificationStore) *AnalysisHandler {
	return &AnalysisHandler{
		advisor:       advisor,
		minioService:  minioSvc,
		documents:     documents,
		notifications: notifications,
	}
}

// DocumentResponse is returned after a successful analysis
type DocumentResponse struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	RiskCount int    `json:"risk_count"`
}

// AnalyzeRealEstate analyzes lease and real-estate contracts
func (h *AnalysisHandler) AnalyzeRealEstate(c *gin.Context) {
	h.analyze(c, model.CategoryRealEstate)
}

// AnalyzeWork analyzes employment and freelance service contracts
func (h *AnalysisHandler) AnalyzeWork(c *gin.Context) {
	h.analyze(c, model.CategoryWork)
}

// AnalyzeConsumer analyzes consumer service contracts (gyms, venues, ...)
func (h *AnalysisHandler) AnalyzeConsumer(c *gin.Context) {
	h.analyze(c, model.CategoryConsumer)
}

// AnalyzeNDA analyzes NDAs and non-compete covenants
func (h *AnalysisHandler) AnalyzeNDA(c *gin.Context) {
	h.analyze(c, model.CategoryNDA)
}

// AnalyzeOther analyzes uncategorized documents (partnership agreements,
// IOUs, memoranda, ...)
func (h *AnalysisHandler) AnalyzeOther(c *gin.Context) {
	h.analyze(c, model.CategoryGeneral)
}

func (h *AnalysisHandler) analyze(c *gin.Context, category model.Category) {
	username := middleware.GetUsername(c)
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF and DOCX files are allowed"})
		return
	}

	contentType := "application/pdf"
	if ext == ".docx" {
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}

	documentID := uuid.New().String()

	// Stage the upload on local disk; the engine client reads it from
	// there and the handler owns its lifetime.
	tempFile, err := os.CreateTemp("", "analysis-*"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := io.Copy(tempFile, file); err != nil {
		tempFile.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}
	if err := tempFile.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	// Archive the original so the report can reference it. Best effort:
	// analysis proceeds without a source URL when the archive is down.
	var archive service.ArchiveRef
	if h.minioService != nil {
		objectName := fmt.Sprintf("%s/%s/%s", username, documentID, header.Filename)
		if _, err := file.Seek(0, io.SeekStart); err == nil {
			if err := h.minioService.ArchiveOriginal(ctx, objectName, file, header.Size, contentType); err != nil {
				logger.Warn(ctx, "failed to archive original", "object", objectName, "error", err)
			} else {
				archive.ObjectName = objectName
				if url, err := h.minioService.GetPresignedURL(ctx, objectName); err == nil {
					archive.URL = url
				}
			}
		}
	}

	result, err := h.advisor.Analyze(ctx, tempPath, category)
	if err != nil {
		var rejection *service.NotAContractError
		switch {
		case errors.As(err, &rejection):
			c.JSON(http.StatusBadRequest, gin.H{"error": rejection.Message})
		case errors.Is(err, service.ErrUnknownCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document category"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed: " + err.Error()})
		}
		return
	}

	record := h.documents.SaveReport(username, header.Filename, category, archive, result)

	h.notifyUser(username, header.Filename, record.Analysis.RiskLevel)

	riskCount := 0
	if record.Analysis.RiskLevel == model.RiskHigh {
		riskCount = 1
	}

	c.JSON(http.StatusOK, DocumentResponse{
		ID:        record.Document.ID,
		Filename:  record.Document.Filename,
		Status:    record.Document.Status,
		CreatedAt: record.Document.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		RiskCount: riskCount,
	})
}

// notifyUser fans out analysis notifications according to the user's
// settings.
func (h *AnalysisHandler) notifyUser(username, filename, riskLevel string) {
	settings := h.notifications.Settings(username)
	if !settings.PushEnabled {
		return
	}

	if settings.AnalysisComplete {
		h.notifications.Notify(username, "Analysis complete",
			fmt.Sprintf("The analysis of %s has finished.", filename))
	}
	if riskLevel == model.RiskHigh && settings.RiskAlert {
		h.notifications.Notify(username, "High-risk clauses detected",
			fmt.Sprintf("%s contains clauses flagged as high risk.", filename))
	}
}
