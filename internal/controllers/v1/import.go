package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/importer"
	"github.com/fundward/backend/internal/importer/parser/csvgeneric"
	"github.com/fundward/backend/internal/models"
)

// RegisterImportRoutes registers the routes for imports with the
// RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", CreateImport)
}

// ImportQuery contains the multipart form fields of an import, everything
// except the statement file itself.
type ImportQuery struct {
	AccountID string          `form:"accountId" binding:"required"` // ID of the account to import the transactions for
	OwnerID   string          `form:"ownerId" binding:"required"`   // ID of the owner of the account
	Format    importer.Format `form:"format" binding:"required"`    // Statement format of the uploaded file

	// Column mapping, only used with the generic_csv format
	DateColumn        string `form:"dateColumn"`
	DescriptionColumn string `form:"descriptionColumn"`
	AmountColumn      string `form:"amountColumn"`
	TypeColumn        string `form:"typeColumn"`
	DateLayout        string `form:"dateLayout"`
}

type ImportResult struct {
	Imported int      `json:"imported" example:"27"`
	Warnings []string `json:"warnings"`
}

type ImportResponse struct {
	Data  *ImportResult `json:"data"`
	Error *string       `json:"error"`
}

// @Summary		Import statement
// @Description	Parses an uploaded bank statement and creates a transaction for every booking that is not already known. The whole import succeeds or fails as one batch.
// @Tags			Imports
// @Accept			multipart/form-data
// @Produce		json
// @Success		201					{object}	ImportResponse
// @Failure		400					{object}	ImportResponse
// @Failure		404					{object}	ImportResponse
// @Failure		500					{object}	ImportResponse
// @Param			file				formData	file	true	"Statement file"
// @Param			accountId			formData	string	true	"ID of the account to import the transactions for"
// @Param			ownerId				formData	string	true	"ID of the owner of the account"
// @Param			format				formData	string	true	"Statement format"	Enums(generic_csv, fixed_csv, iso20022_xml, swift_mt940)
// @Param			dateColumn			formData	string	false	"Name of the date column (generic_csv only)"
// @Param			descriptionColumn	formData	string	false	"Name of the description column (generic_csv only)"
// @Param			amountColumn		formData	string	false	"Name of the amount column (generic_csv only)"
// @Param			typeColumn			formData	string	false	"Name of the type column (generic_csv only)"
// @Param			dateLayout			formData	string	false	"Go time layout of the date column (generic_csv only)"
// @Router			/v1/imports [post]
func CreateImport(c *gin.Context) {
	var query ImportQuery
	if err := c.ShouldBind(&query); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{Error: &e})
		return
	}

	accountID, err := uuid.Parse(query.AccountID)
	if err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{Error: &e})
		return
	}

	ownerID, err := uuid.Parse(query.OwnerID)
	if err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{Error: &e})
		return
	}

	formFile, err := c.FormFile("file")
	if formFile == nil || err != nil {
		e := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{Error: &e})
		return
	}

	f, err := formFile.Open()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{Error: &e})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{Error: &e})
		return
	}

	result, err := importer.Run(models.DB, data, importer.Import{
		AccountID: accountID,
		OwnerID:   ownerID,
		Format:    query.Format,
		Mapping: csvgeneric.Mapping{
			Date:        query.DateColumn,
			Description: query.DescriptionColumn,
			Amount:      query.AmountColumn,
			Type:        query.TypeColumn,
			DateLayout:  query.DateLayout,
		},
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{
		Data: &ImportResult{
			Imported: result.Imported,
			Warnings: result.Warnings,
		},
	})
}
