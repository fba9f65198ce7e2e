package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"legalconsult-backend/logger"
	"legalconsult-backend/models"
	"legalconsult-backend/service"

	"github.com/gin-gonic/gin"
)

const (
	firmIDHeader = "X-Firm-ID"
	userIDHeader = "X-User-ID"
)

// ConsultationProcessor is the service surface the handler needs
type ConsultationProcessor interface {
	ProcessConsultation(ctx context.Context, in service.ProcessConsultationRequest) (*models.ConsultationResponse, error)
	GetConsultation(ctx context.Context, id string) (*models.ConsultationRecord, error)
}

// ConsultationHandler handles HTTP requests for consultations
type ConsultationHandler struct {
	consultations ConsultationProcessor
	logger        logger.Logger
}

// NewConsultationHandler creates a new consultation handler
func NewConsultationHandler(consultations ConsultationProcessor, log logger.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		consultations: consultations,
		logger:        logger.OrNoOp(log),
	}
}

// RegisterRoutes mounts the consultation endpoints on rg
func (h *ConsultationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/consultations", h.CreateConsultation)
	rg.GET("/consultations/case-types", h.ListCaseTypes)
	rg.GET("/consultations/:id", h.GetConsultation)
}

// CreateConsultation handles POST /api/consultations
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req models.ConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be a JSON consultation request")
		return
	}

	resp, err := h.consultations.ProcessConsultation(c.Request.Context(), service.ProcessConsultationRequest{
		Request: req,
		FirmID:  strings.TrimSpace(c.GetHeader(firmIDHeader)),
		UserID:  strings.TrimSpace(c.GetHeader(userIDHeader)),
	})
	if err != nil {
		h.writeConsultationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
	})
}

func (h *ConsultationHandler) writeConsultationError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": ve.Message,
				"field":   ve.Field,
			},
		})
	case errors.Is(err, service.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, service.ErrGenerationFailed):
		writeError(c, http.StatusInternalServerError, "GENERATION_FAILED", "Failed to generate a consultation answer")
	case errors.Is(err, service.ErrEnhancementFailed):
		writeError(c, http.StatusInternalServerError, "ENHANCEMENT_FAILED", "Failed to enhance the consultation answer")
	default:
		h.logger.WithError(err).Error("consultation failed", nil)
		writeError(c, http.StatusInternalServerError, "CONSULTATION_FAILED", "Consultation could not be completed")
	}
}

// GetConsultation handles GET /api/consultations/:id
func (h *ConsultationHandler) GetConsultation(c *gin.Context) {
	rec, err := h.consultations.GetConsultation(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConsultationNotFound):
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Consultation not found")
		case errors.Is(err, service.ErrRecorderNotConfigured):
			writeError(c, http.StatusServiceUnavailable, "HISTORY_UNAVAILABLE", "Consultation history is not enabled")
		default:
			h.logger.WithError(err).Error("failed to load consultation", map[string]interface{}{"consultation_id": c.Param("id")})
			writeError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load consultation")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rec,
	})
}

type caseTypeInfo struct {
	CaseType    models.CaseType `json:"case_type"`
	Category    string          `json:"category"`
	Suggestions []string        `json:"suggestions"`
}

// ListCaseTypes handles GET /api/consultations/case-types
func (h *ConsultationHandler) ListCaseTypes(c *gin.Context) {
	out := make([]caseTypeInfo, 0, len(models.CaseTypes))
	for _, ct := range models.CaseTypes {
		out = append(out, caseTypeInfo{
			CaseType:    ct,
			Category:    ct.Category(),
			Suggestions: service.Suggest(ct),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    out,
	})
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
