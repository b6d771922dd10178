package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/ledger"
	"github.com/fundward/backend/internal/models"
)

// SplitEditable is the request body for splitting a transaction.
type SplitEditable struct {
	Lines []SplitLineEditable `json:"lines"`
}

type SplitLineEditable struct {
	Description string          `json:"description" example:"Groceries"`
	Amount      decimal.Decimal `json:"amount" example:"80.00"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
}

// @Summary		Split transaction
// @Description	Replaces a transaction with several smaller ones whose amounts add up to the original. The original transaction is deleted.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201		{object}	TransactionListResponse
// @Failure		400		{object}	TransactionListResponse
// @Failure		404		{object}	TransactionListResponse
// @Failure		409		{object}	TransactionListResponse
// @Failure		500		{object}	TransactionListResponse
// @Param			id		path		string			true	"ID of the transaction"
// @Param			split	body		SplitEditable	true	"Split"
// @Router			/v1/transactions/{id}/split [post]
func SplitTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	var editable SplitEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	lines := make([]ledger.SplitLine, 0, len(editable.Lines))
	for _, line := range editable.Lines {
		lines = append(lines, ledger.SplitLine{
			Description: line.Description,
			Amount:      line.Amount,
			CategoryID:  line.CategoryID,
		})
	}

	tx := models.DB.Begin()

	created, err := ledger.Split(tx, transaction, lines)
	if err != nil {
		tx.Rollback()
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	if err := tx.Commit().Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := make([]Transaction, 0, len(created))
	for _, replacement := range created {
		data = append(data, newTransaction(replacement))
	}

	c.JSON(http.StatusCreated, TransactionListResponse{Data: data})
}
