package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundward/backend/internal/categorizer"
	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/ledger"
	"github.com/fundward/backend/internal/models"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactions)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}

	// Fund operations on a transaction
	{
		r.OPTIONS("/:id/allocation", httputil.OptionsPost)
		r.POST("/:id/allocation", CreateAllocation)
		r.OPTIONS("/:id/fund-debit", httputil.OptionsPost)
		r.POST("/:id/fund-debit", CreateFundDebit)
		r.OPTIONS("/:id/split", httputil.OptionsPost)
		r.POST("/:id/split", SplitTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path	string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	err = models.DB.Preload("Tags").First(&transaction, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

type TransactionQueryFilter struct {
	OwnerID    string    `form:"owner"`    // Filter by owner ID
	AccountID  string    `form:"account"`  // Filter by account ID
	CategoryID string    `form:"category"` // Filter by category ID
	FromDate   time.Time `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`
	UntilDate  time.Time `form:"untilDate" time_format:"2006-01-02" time_utc:"1"`
	Offset     uint      `form:"offset"`
	Limit      int       `form:"limit"`
}

// @Summary		Get transactions
// @Description	Returns a list of transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			owner		query	string	false	"Filter by owner ID"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			fromDate	query	string	false	"Transactions at and after this date"
// @Param			untilDate	query	string	false	"Transactions before and at this date"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	q := models.DB.
		Preload("Tags").
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC")

	for param, value := range map[string]string{
		"transactions.owner_id":    filter.OwnerID,
		"transactions.account_id":  filter.AccountID,
		"transactions.category_id": filter.CategoryID,
	} {
		if value == "" {
			continue
		}

		id, err := uuid.Parse(value)
		if err != nil {
			e := httputil.ErrInvalidUUID.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
			return
		}

		q = q.Where(param+" = ?", id)
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("transactions.date >= date(?)", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("transactions.date <= date(?)", filter.UntilDate)
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if filter.Limit != 0 {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// @Summary		Create transaction
// @Description	Creates a new transaction and applies its fund effects
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction := editable.model()

	tx := models.DB.Begin()

	tags, err := editable.tags(tx)
	if err == nil {
		transaction.Tags = tags
		err = tx.Create(&transaction).Error
	}

	if err == nil {
		err = ledger.OnCreate(tx, transaction)
	}

	if err == nil {
		err = categorizer.Learn(tx, transaction)
	}

	if err != nil {
		tx.Rollback()
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	if err := tx.Commit().Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// TransactionUpdate contains the updatable fields of a transaction. Only
// fields present in the request body are changed.
type TransactionUpdate struct {
	Date        *time.Time              `json:"date"`
	Description *string                 `json:"description"`
	Amount      *decimal.Decimal        `json:"amount"`
	Type        *models.TransactionType `json:"type"`
	CategoryID  *uuid.UUID              `json:"categoryId"`
	TagIDs      *[]uuid.UUID            `json:"tagIds"`
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified. Fund balances follow the change.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		string				true	"ID of the transaction"
// @Param			transaction	body		TransactionUpdate	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	err = models.DB.Preload("Tags").First(&transaction, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var update TransactionUpdate
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	// Snapshot for the ledger reversal
	previous := transaction

	if update.Date != nil {
		transaction.Date = *update.Date
	}
	if update.Description != nil {
		transaction.Description = *update.Description
	}
	if update.Amount != nil {
		transaction.Amount = *update.Amount
	}
	if update.Type != nil {
		transaction.Type = *update.Type
	}
	if update.CategoryID != nil {
		transaction.CategoryID = update.CategoryID
	}

	tx := models.DB.Begin()

	if update.TagIDs != nil {
		var tags []models.Tag
		if len(*update.TagIDs) > 0 {
			err = tx.Where("id IN ?", *update.TagIDs).Find(&tags).Error
		}

		if err == nil {
			transaction.Tags = tags
			err = tx.Model(&transaction).Association("Tags").Replace(tags)
		}
	}

	if err == nil {
		err = tx.Save(&transaction).Error
	}

	if err == nil {
		err = ledger.OnUpdate(tx, previous, transaction)
	}

	if err == nil {
		err = categorizer.Learn(tx, transaction)
	}

	if err != nil {
		tx.Rollback()
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	if err := tx.Commit().Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and reverses its fund effects
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, id).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	tx := models.DB.Begin()

	err = ledger.OnDelete(tx, transaction)
	if err == nil {
		err = tx.Delete(&transaction).Error
	}

	if err != nil {
		tx.Rollback()
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
