package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundward/backend/internal/categorizer"
	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/models"
)

// RegisterSuggestionRoutes registers the routes for category suggestions
// with the RouterGroup that is passed.
func RegisterSuggestionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetSuggestion)
}

type SuggestionQuery struct {
	OwnerID     string `form:"ownerId" binding:"required"`     // ID of the owner whose rules are searched
	Description string `form:"description" binding:"required"` // Transaction description to suggest a category for
}

type SuggestionResponse struct {
	Data  *Suggestion `json:"data"`
	Error *string     `json:"error"`
}

type Suggestion struct {
	CategoryID    uuid.UUID   `json:"categoryId"`
	SubcategoryID *uuid.UUID  `json:"subcategoryId"`
	TagIDs        []uuid.UUID `json:"tagIds"`
}

// @Summary		Suggest category
// @Description	Suggests a category and tags for a transaction description based on the learned categorization rules. An empty data field means no rule matched well enough.
// @Tags			Suggestions
// @Produce		json
// @Success		200			{object}	SuggestionResponse
// @Failure		400			{object}	SuggestionResponse
// @Failure		500			{object}	SuggestionResponse
// @Param			ownerId		query		string	true	"ID of the owner whose rules are searched"
// @Param			description	query		string	true	"Transaction description to suggest a category for"
// @Router			/v1/suggestions [get]
func GetSuggestion(c *gin.Context) {
	var query SuggestionQuery
	if err := c.Bind(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SuggestionResponse{Error: &e})
		return
	}

	ownerID, err := uuid.Parse(query.OwnerID)
	if err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, SuggestionResponse{Error: &e})
		return
	}

	suggestion, err := categorizer.Engine{}.Suggest(models.DB, ownerID, query.Description)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SuggestionResponse{Error: &e})
		return
	}

	if suggestion.CategoryID == uuid.Nil {
		c.JSON(http.StatusOK, SuggestionResponse{})
		return
	}

	c.JSON(http.StatusOK, SuggestionResponse{
		Data: &Suggestion{
			CategoryID:    suggestion.CategoryID,
			SubcategoryID: suggestion.SubcategoryID,
			TagIDs:        suggestion.TagIDs,
		},
	})
}
