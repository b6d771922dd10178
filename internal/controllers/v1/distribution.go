package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/ledger"
	"github.com/fundward/backend/internal/models"
)

// DistributionEditable is the request body for allocating an income
// transaction or debiting funds for an expense transaction.
type DistributionEditable struct {
	Note  string                     `json:"note" example:"march salary"`
	Lines []DistributionLineEditable `json:"lines"`
}

type DistributionLineEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"2c58b1ab-e618-46f8-9fa5-15e7b8bbcf83"`
	Amount     decimal.Decimal `json:"amount" example:"250.00"`
	Note       string          `json:"note"`
}

func (editable DistributionEditable) lines() []ledger.Line {
	lines := make([]ledger.Line, 0, len(editable.Lines))
	for _, line := range editable.Lines {
		lines = append(lines, ledger.Line{
			CategoryID: line.CategoryID,
			Amount:     line.Amount,
			Note:       line.Note,
		})
	}

	return lines
}

type Distribution struct {
	ID            uuid.UUID          `json:"id"`
	CreatedAt     time.Time          `json:"createdAt"`
	TransactionID uuid.UUID          `json:"transactionId"`
	Total         decimal.Decimal    `json:"total"`
	Note          string             `json:"note"`
	Lines         []DistributionLine `json:"lines"`
}

type DistributionLine struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

type DistributionResponse struct {
	Data  *Distribution `json:"data"`
	Error *string       `json:"error"`
}

// @Summary		Allocate income
// @Description	Fans an income transaction out into fund credits. Each line credits the fund of one fund-managed category.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	DistributionResponse
// @Failure		400			{object}	DistributionResponse
// @Failure		404			{object}	DistributionResponse
// @Failure		409			{object}	DistributionResponse
// @Failure		500			{object}	DistributionResponse
// @Param			id			path		string					true	"ID of the transaction"
// @Param			allocation	body		DistributionEditable	true	"Allocation"
// @Router			/v1/transactions/{id}/allocation [post]
func CreateAllocation(c *gin.Context) {
	transaction, editable, err := bindDistribution(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	tx := models.DB.Begin()

	allocation, err := ledger.Allocate(tx, transaction, editable.lines(), editable.Note)
	if err != nil {
		tx.Rollback()
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	if err := tx.Commit().Error; err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	data := Distribution{
		ID:            allocation.ID,
		CreatedAt:     allocation.CreatedAt,
		TransactionID: allocation.TransactionID,
		Total:         allocation.TotalAllocatedAmount,
		Note:          allocation.Note,
	}
	for _, line := range allocation.Lines {
		data.Lines = append(data.Lines, DistributionLine{
			CategoryID: line.CategoryID,
			Amount:     line.Amount,
			Note:       line.Note,
		})
	}

	c.JSON(http.StatusCreated, DistributionResponse{Data: &data})
}

// @Summary		Debit funds
// @Description	Fans an expense transaction out into fund debits. Each line debits the fund of one fund-managed category.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	DistributionResponse
// @Failure		400			{object}	DistributionResponse
// @Failure		404			{object}	DistributionResponse
// @Failure		409			{object}	DistributionResponse
// @Failure		500			{object}	DistributionResponse
// @Param			id			path		string					true	"ID of the transaction"
// @Param			fundDebit	body		DistributionEditable	true	"Fund debit"
// @Router			/v1/transactions/{id}/fund-debit [post]
func CreateFundDebit(c *gin.Context) {
	transaction, editable, err := bindDistribution(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	tx := models.DB.Begin()

	record, err := ledger.Debit(tx, transaction, editable.lines(), editable.Note)
	if err != nil {
		tx.Rollback()
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	if err := tx.Commit().Error; err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	data := Distribution{
		ID:            record.ID,
		CreatedAt:     record.CreatedAt,
		TransactionID: record.TransactionID,
		Total:         record.TotalDebitedAmount,
		Note:          record.Note,
	}
	for _, line := range record.Lines {
		data.Lines = append(data.Lines, DistributionLine{
			CategoryID: line.CategoryID,
			Amount:     line.Amount,
			Note:       line.Note,
		})
	}

	c.JSON(http.StatusCreated, DistributionResponse{Data: &data})
}

func bindDistribution(c *gin.Context) (models.Transaction, DistributionEditable, error) {
	id, err := parseID(c)
	if err != nil {
		return models.Transaction{}, DistributionEditable{}, err
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, id).Error
	if err != nil {
		return models.Transaction{}, DistributionEditable{}, err
	}

	var editable DistributionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return models.Transaction{}, DistributionEditable{}, err
	}

	return transaction, editable, nil
}
