package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundward/backend/internal/httputil"
)

type URIID struct {
	ID string `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// parseID binds and parses the resource ID from the request URI.
func parseID(c *gin.Context) (uuid.UUID, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	id, err := uuid.Parse(uri.ID)
	if err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return id, nil
}
