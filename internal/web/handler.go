package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/telemetry"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// multipartOverhead leaves room for form boundaries around the file part.
const multipartOverhead = 64 << 10

// DocumentService is the subset of the documents service the page needs.
type DocumentService interface {
	Upload(ctx context.Context, sessionID, fileName string, r io.Reader) (documents.Document, error)
	Current(ctx context.Context, sessionID string) (documents.Document, error)
}

// Analyzer runs an analysis over a session's document.
type Analyzer interface {
	Analyze(ctx context.Context, sessionID, documentID string) (analyses.Analysis, error)
}

// Handler serves the single-page upload and analysis UI.
type Handler struct {
	Docs           DocumentService
	Analyzer       Analyzer
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(docs DocumentService, analyzer Analyzer, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = documents.DefaultMaxUploadBytes
	}
	return &Handler{Docs: docs, Analyzer: analyzer, MaxUploadBytes: maxUploadBytes}
}

type page struct {
	HasDocument bool
	FileName    string
	Text        string
	Result      string
	Warning     string
	Error       string
}

// RegisterRoutes attaches the page routes to the engine root.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.index)
	r.POST("/upload", h.upload)
	r.POST("/analyze", h.analyze)
}

func (h *Handler) index(c *gin.Context) {
	p, err := h.currentPage(c)
	if err != nil {
		p.Error = "Something went wrong loading your document."
		h.render(c, http.StatusInternalServerError, p)
		return
	}
	h.render(c, http.StatusOK, p)
}

func (h *Handler) upload(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		msg := "Please choose a PDF file to upload."
		if errors.As(err, &maxErr) {
			msg = fmt.Sprintf("The file is larger than %d bytes.", h.MaxUploadBytes)
		}
		h.renderError(c, http.StatusBadRequest, msg)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		h.renderError(c, http.StatusBadRequest, fmt.Sprintf("The file is larger than %d bytes.", h.MaxUploadBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "The file could not be read.")
		return
	}
	defer file.Close()

	doc, err := h.Docs.Upload(c.Request.Context(), sessionID, fileHeader.Filename, file)
	if doc.ID != "" {
		c.Set("documentId", doc.ID)
	}
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrEmptyFile):
			h.renderError(c, http.StatusBadRequest, "The file is empty. Please choose a PDF resume.")
		case errors.Is(err, documents.ErrUnsupportedType):
			h.renderError(c, http.StatusBadRequest, "Only PDF files are supported.")
		case errors.Is(err, documents.ErrInvalidInput):
			h.renderError(c, http.StatusBadRequest, "Please choose a PDF file to upload.")
		case errors.Is(err, documents.ErrExtractionFailed):
			h.renderError(c, http.StatusUnprocessableEntity, "The PDF could not be read. Please try another file.")
		default:
			telemetry.Error("web.upload_failed", map[string]any{"session_id": sessionID, "err": err})
			h.renderError(c, http.StatusInternalServerError, "The upload failed. Please try again.")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) analyze(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	p, err := h.currentPage(c)
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, "Something went wrong loading your document.")
		return
	}

	ctx := analyses.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Analyzer.Analyze(ctx, sessionID, "")
	if analysis.ID != "" {
		c.Set("analysisId", analysis.ID)
	}
	p.Warning = analysis.Warning
	if err != nil {
		status := http.StatusInternalServerError
		p.Error = "The analysis failed. Please try again."
		if errors.Is(err, analyses.ErrGenerationFailed) {
			status = http.StatusBadGateway
			p.Error = "The analysis model did not return a result. Please try again."
		}
		h.render(c, status, p)
		return
	}

	p.Result = analysis.Result
	h.render(c, http.StatusOK, p)
}

func (h *Handler) currentPage(c *gin.Context) (page, error) {
	doc, err := h.Docs.Current(c.Request.Context(), middleware.SessionIDFromContext(c))
	if errors.Is(err, documents.ErrNotFound) {
		return page{}, nil
	}
	if err != nil {
		return page{}, err
	}
	c.Set("documentId", doc.ID)
	return page{HasDocument: true, FileName: doc.FileName, Text: doc.ExtractedText}, nil
}

func (h *Handler) renderError(c *gin.Context, status int, msg string) {
	p, err := h.currentPage(c)
	if err != nil {
		p = page{}
	}
	p.Error = msg
	h.render(c, status, p)
}

func (h *Handler) render(c *gin.Context, status int, p page) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := pageTemplate.Execute(c.Writer, p); err != nil {
		telemetry.Error("web.render_failed", map[string]any{"err": err})
	}
}
