package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyzeCurrent)
	rg.POST("/documents/:id/analyze", h.analyzeDocument)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

func (h *Handler) analyzeCurrent(c *gin.Context) {
	h.analyze(c, "")
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	documentID := c.Param("id")
	if documentID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "document id is required", nil)
		return
	}
	c.Set("documentId", documentID)
	h.analyze(c, documentID)
}

func (h *Handler) analyze(c *gin.Context, documentID string) {
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))

	analysis, err := h.Svc.Analyze(ctx, middleware.SessionIDFromContext(c), documentID)
	if analysis.ID != "" {
		c.Set("analysisId", analysis.ID)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		case errors.Is(err, ErrDocumentNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "document not found", nil)
		case errors.Is(err, ErrGenerationFailed):
			respond.Error(c, http.StatusBadGateway, respond.CodeGenerationFailed, "The analysis model did not return a result", gin.H{
				"analysisId": analysis.ID,
			})
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to analyze document", nil)
		}
		return
	}

	respond.OK(c, toResponse(analysis))
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	analysis, err := h.Svc.Get(c.Request.Context(), middleware.SessionIDFromContext(c), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to fetch analysis", nil)
		}
		return
	}
	c.Set("analysisId", analysis.ID)
	respond.OK(c, toResponse(analysis))
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit, offset := respond.PageParams(c)

	items, err := h.Svc.List(c.Request.Context(), middleware.SessionIDFromContext(c), limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list analyses", nil)
		}
		return
	}

	resp := make([]AnalysisResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	respond.OK(c, resp)
}
