package documents

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
)

// DefaultMaxUploadBytes caps uploads when the handler is built without a limit.
const DefaultMaxUploadBytes = 10 << 20

// multipartOverhead leaves room for form boundaries around the file part.
const multipartOverhead = 64 << 10

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents/current", h.current)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/file", h.file)
}

func (h *Handler) upload(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, fmt.Sprintf("file exceeds %d bytes", h.MaxUploadBytes), nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is required", nil)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, fmt.Sprintf("file exceeds %d bytes", h.MaxUploadBytes), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), sessionID, fileHeader.Filename, file)
	if doc.ID != "" {
		c.Set("documentId", doc.ID)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		case errors.Is(err, ErrExtractionFailed):
			respond.Error(c, http.StatusUnprocessableEntity, respond.CodeExtractionFailed, "Could not read text from the PDF", gin.H{
				"documentId": doc.ID,
			})
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to upload document", nil)
		}
		return
	}

	respond.Created(c, toResponse(doc, true))
}

func (h *Handler) current(c *gin.Context) {
	doc, err := h.Svc.Current(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to fetch document")
		return
	}
	c.Set("documentId", doc.ID)
	respond.OK(c, toResponse(doc, true))
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), middleware.SessionIDFromContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch document")
		return
	}
	c.Set("documentId", doc.ID)
	respond.OK(c, toResponse(doc, true))
}

func (h *Handler) file(c *gin.Context) {
	doc, rc, err := h.Svc.OpenFile(c.Request.Context(), middleware.SessionIDFromContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to read document")
		return
	}
	defer rc.Close()

	c.Set("documentId", doc.ID)
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.MimeType, rc, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}),
	})
}

func (h *Handler) list(c *gin.Context) {
	limit, offset := respond.PageParams(c)

	docs, err := h.Svc.List(c.Request.Context(), middleware.SessionIDFromContext(c), limit, offset)
	if err != nil {
		h.fail(c, err, "failed to list documents")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc, false))
	}
	respond.OK(c, resp)
}

func (h *Handler) fail(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "document not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, internalMsg, nil)
	}
}
