package handler

import (
	"errors"
	"net/http"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/gin-gonic/gin"
)

// sendError maps pipeline errors onto HTTP statuses: validation failures are
// the caller's fault, upstream (embedding service / vector store) failures
// surface as bad gateway, everything else is internal.
func sendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNoDocuments), errors.Is(err, types.ErrEmptyQuery), errors.Is(err, types.ErrInvalidFilter):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrEmbeddingUnavailable), errors.Is(err, types.ErrVectorStoreUnavailable):
		status = http.StatusBadGateway
	}
	c.JSON(status, types.DataResponse{
		Status:  types.StatusError,
		Message: err.Error(),
	})
}

func sendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, types.DataResponse{
		Status:  types.StatusError,
		Message: message,
	})
}
