package handler

import (
	"fmt"
	"net/http"

	"github.com/ayala-manuel/rag-containers/database"
	"github.com/ayala-manuel/rag-containers/types"
	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	store             database.VectorStore
	defaultVectorSize int
}

func NewCollectionHandler(store database.VectorStore, defaultVectorSize int) *CollectionHandler {
	return &CollectionHandler{
		store:             store,
		defaultVectorSize: defaultVectorSize,
	}
}

func (h *CollectionHandler) HandleListCollections(c *gin.Context) {
	names, err := h.store.ListCollections(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	collections := make([]types.CollectionInfo, 0, len(names))
	for _, name := range names {
		collections = append(collections, types.CollectionInfo{CollectionName: name})
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  types.StatusSuccess,
		Message: fmt.Sprintf("%d collection(s) found", len(collections)),
		Data:    collections,
	})
}

func (h *CollectionHandler) HandleCreateCollection(c *gin.Context) {
	var req types.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBadRequest(c, "Invalid request body")
		return
	}
	if req.Name == "" {
		sendBadRequest(c, "Collection name is required")
		return
	}
	if req.VectorSize <= 0 {
		req.VectorSize = h.defaultVectorSize
	}

	if err := h.store.CreateCollection(c.Request.Context(), req.Name, req.VectorSize); err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  types.StatusSuccess,
		Message: fmt.Sprintf("Collection '%s' created successfully", req.Name),
		Data:    types.CollectionInfo{CollectionName: req.Name},
	})
}

func (h *CollectionHandler) HandleDeleteCollection(c *gin.Context) {
	name := c.Param("collection")
	if err := h.store.DeleteCollection(c.Request.Context(), name); err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  types.StatusSuccess,
		Message: fmt.Sprintf("Collection '%s' deleted successfully", name),
	})
}
