package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fundward/backend/internal/models"
)

// deleteResource looks up the resource by its ID from the URI and deletes
// it. Cascades are handled by the database constraints.
func deleteResource[R models.User | models.Account | models.Category | models.Tag](c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var resource R
	err = models.DB.First(&resource, "id = ?", id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&resource).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
