package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ayala-manuel/rag-containers/service"
	"github.com/ayala-manuel/rag-containers/types"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// HandleUploadDocuments ingests a batch of documents into a collection. The
// body is a JSON array of {text, metadata} items; the whole batch either
// lands or nothing does.
func (h *DocumentHandler) HandleUploadDocuments(c *gin.Context) {
	collection := c.Param("collection")

	var docs []types.Document
	if err := c.ShouldBindJSON(&docs); err != nil {
		sendBadRequest(c, "Invalid request body")
		return
	}

	count, err := h.documentService.UploadDocuments(c.Request.Context(), collection, docs)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  types.StatusSuccess,
		Message: fmt.Sprintf("%d fragment(s) uploaded to collection '%s'", count, collection),
	})
}

// HandleListDocuments returns the stored chunks grouped by document title.
func (h *DocumentHandler) HandleListDocuments(c *gin.Context) {
	collection := c.Param("collection")
	limit, _ := strconv.Atoi(c.Query("limit"))

	groups, err := h.documentService.ListDocumentsByTitle(c.Request.Context(), collection, limit)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  types.StatusSuccess,
		Message: fmt.Sprintf("%d title(s) found", len(groups)),
		Data:    groups,
	})
}

// HandleDeleteDocuments deletes every chunk of each requested title. Titles
// fail or succeed independently; the response carries per-title outcomes.
func (h *DocumentHandler) HandleDeleteDocuments(c *gin.Context) {
	collection := c.Param("collection")

	var req types.DeleteByTitlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBadRequest(c, "Invalid request body")
		return
	}

	result, err := h.documentService.DeleteDocumentsByTitles(c.Request.Context(), collection, req.Titles)
	if err != nil {
		sendError(c, err)
		return
	}

	status := http.StatusOK
	if result.Status == types.StatusError {
		status = http.StatusNotFound
	}
	c.JSON(status, types.DataResponse{
		Status: result.Status,
		Data:   result.Results,
	})
}
