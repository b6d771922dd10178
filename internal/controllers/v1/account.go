package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/models"
)

// RegisterAccountRoutes registers the routes for accounts with the
// RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

type AccountEditable struct {
	OwnerID        uuid.UUID          `json:"ownerId" example:"c8572c6d-8919-4f4a-9087-02bc64156b29"`
	Name           string             `json:"name" binding:"required" example:"Checking"`
	Currency       string             `json:"currency" example:"CHF"`
	Kind           models.AccountKind `json:"kind" example:"INDIVIDUAL"`
	InitialBalance decimal.Decimal    `json:"initialBalance" example:"0"`
}

type AccountUpdate struct {
	Name           *string             `json:"name"`
	Currency       *string             `json:"currency"`
	Kind           *models.AccountKind `json:"kind"`
	InitialBalance *decimal.Decimal    `json:"initialBalance"`
}

type Account struct {
	ID             uuid.UUID          `json:"id"`
	CreatedAt      time.Time          `json:"createdAt"`
	OwnerID        uuid.UUID          `json:"ownerId"`
	Name           string             `json:"name"`
	Currency       string             `json:"currency"`
	Kind           models.AccountKind `json:"kind"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
}

type AccountResponse struct {
	Data  *Account `json:"data"`
	Error *string  `json:"error"`
}

type AccountListResponse struct {
	Data  []Account `json:"data"`
	Error *string   `json:"error"`
}

func newAccount(a models.Account) Account {
	return Account{
		ID:             a.ID,
		CreatedAt:      a.CreatedAt,
		OwnerID:        a.OwnerID,
		Name:           a.Name,
		Currency:       a.Currency,
		Kind:           a.Kind,
		InitialBalance: a.InitialBalance,
	}
}

// @Summary		Get accounts
// @Description	Returns a list of accounts
// @Tags			Accounts
// @Produce		json
// @Success		200		{object}	AccountListResponse
// @Failure		400		{object}	AccountListResponse
// @Failure		500		{object}	AccountListResponse
// @Param			owner	query		string	false	"Filter by owner ID"
// @Router			/v1/accounts [get]
func GetAccounts(c *gin.Context) {
	q := models.DB.Order("name ASC")

	if owner := c.Query("owner"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			e := httputil.ErrInvalidUUID.Error()
			c.JSON(http.StatusBadRequest, AccountListResponse{Error: &e})
			return
		}

		q = q.Where("owner_id = ?", id)
	}

	var accounts []models.Account
	err := q.Find(&accounts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountListResponse{Error: &e})
		return
	}

	data := make([]Account, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, newAccount(account))
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: data})
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Failure		500	{object}	AccountResponse
// @Param			id	path		string	true	"ID of the account"
// @Router			/v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	var account models.Account
	err = models.DB.First(&account, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	data := newAccount(account)
	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Create account
// @Description	Creates a new account
// @Tags			Accounts
// @Produce		json
// @Success		201		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts [post]
func CreateAccount(c *gin.Context) {
	var editable AccountEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	account := models.Account{
		OwnerID:        editable.OwnerID,
		Name:           editable.Name,
		Currency:       editable.Currency,
		Kind:           editable.Kind,
		InitialBalance: editable.InitialBalance,
	}

	if err := models.DB.Create(&account).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	data := newAccount(account)
	c.JSON(http.StatusCreated, AccountResponse{Data: &data})
}

// @Summary		Update account
// @Description	Updates an existing account. Only values to be updated need to be specified.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		string			true	"ID of the account"
// @Param			account	body		AccountUpdate	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	var account models.Account
	err = models.DB.First(&account, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	var update AccountUpdate
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Currency != nil {
		account.Currency = *update.Currency
	}
	if update.Kind != nil {
		account.Kind = *update.Kind
	}
	if update.InitialBalance != nil {
		account.InitialBalance = *update.InitialBalance
	}

	if err := models.DB.Save(&account).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	data := newAccount(account)
	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Delete account
// @Description	Deletes an account and its transactions
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the account"
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	deleteResource[models.Account](c)
}
