package handler

import (
	"net/http"

	"github.com/ayala-manuel/rag-containers/service"
	"github.com/ayala-manuel/rag-containers/types"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	documentService *service.DocumentService
}

func NewSearchHandler(documentService *service.DocumentService) *SearchHandler {
	return &SearchHandler{
		documentService: documentService,
	}
}

// HandleSearch embeds the query, applies the optional tag/date filter and
// returns similarity hits ordered by descending score.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	collection := c.Param("collection")

	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBadRequest(c, "Invalid request body")
		return
	}

	results, err := h.documentService.Search(c.Request.Context(), collection, req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  types.StatusSuccess,
		Message: "Search completed",
		Data: types.SearchResponse{
			CollectionName: collection,
			Results:        results,
		},
	})
}
