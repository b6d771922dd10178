package ledger_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fundward/backend/internal/ledger"
	"github.com/fundward/backend/internal/models"
)

func (suite *TestSuiteStandard) TestOnCreateExpense() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:    user.ID,
		AccountID:  account.ID,
		Amount:     decimal.NewFromFloat(12.50),
		Type:       models.TransactionOut,
		CategoryID: &category.ID,
	})

	err := ledger.OnCreate(models.DB, transaction)
	assert.Nil(suite.T(), err)

	suite.assertBalance(user.ID, category.ID, "-12.5")
}

func (suite *TestSuiteStandard) TestOnCreateIncomeIndividualAccount() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID, Kind: models.AccountKindIndividual})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:    user.ID,
		AccountID:  account.ID,
		Amount:     decimal.NewFromFloat(100),
		Type:       models.TransactionIn,
		CategoryID: &category.ID,
	})

	err := ledger.OnCreate(models.DB, transaction)
	assert.Nil(suite.T(), err)

	suite.assertBalance(user.ID, category.ID, "100")
}

func (suite *TestSuiteStandard) TestOnCreateIncomeSharedAccount() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID, Kind: models.AccountKindShared})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:    user.ID,
		AccountID:  account.ID,
		Amount:     decimal.NewFromFloat(100),
		Type:       models.TransactionIn,
		CategoryID: &category.ID,
	})

	err := ledger.OnCreate(models.DB, transaction)
	assert.Nil(suite.T(), err)

	suite.assertBalance(user.ID, category.ID, "0")
}

func (suite *TestSuiteStandard) TestOnCreateNotFundManaged() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:    user.ID,
		AccountID:  account.ID,
		Amount:     decimal.NewFromFloat(50),
		Type:       models.TransactionOut,
		CategoryID: &category.ID,
	})

	err := ledger.OnCreate(models.DB, transaction)
	assert.Nil(suite.T(), err)

	suite.assertBalance(user.ID, category.ID, "0")
}

func (suite *TestSuiteStandard) TestOnCreateTransfer() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:    user.ID,
		AccountID:  account.ID,
		Amount:     decimal.NewFromFloat(-200),
		Type:       models.TransactionTransfer,
		CategoryID: &category.ID,
	})

	err := ledger.OnCreate(models.DB, transaction)
	assert.Nil(suite.T(), err)

	suite.assertBalance(user.ID, category.ID, "0")
}

func (suite *TestSuiteStandard) TestOnDeleteReversesEffect() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:    user.ID,
		AccountID:  account.ID,
		Amount:     decimal.NewFromFloat(30),
		Type:       models.TransactionOut,
		CategoryID: &category.ID,
	})

	assert.Nil(suite.T(), ledger.OnCreate(models.DB, transaction))
	suite.assertBalance(user.ID, category.ID, "-30")

	assert.Nil(suite.T(), ledger.OnDelete(models.DB, transaction))
	suite.assertBalance(user.ID, category.ID, "0")
}

func (suite *TestSuiteStandard) TestOnUpdateMovesBalance() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	groceries := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries", IsFundManaged: true})
	travel := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Travel", IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:    user.ID,
		AccountID:  account.ID,
		Amount:     decimal.NewFromFloat(40),
		Type:       models.TransactionOut,
		CategoryID: &groceries.ID,
	})

	assert.Nil(suite.T(), ledger.OnCreate(models.DB, transaction))

	updated := transaction
	updated.CategoryID = &travel.ID
	updated.Amount = decimal.NewFromFloat(-25)

	assert.Nil(suite.T(), ledger.OnUpdate(models.DB, transaction, updated))

	suite.assertBalance(user.ID, groceries.ID, "0")
	suite.assertBalance(user.ID, travel.ID, "-25")
}

func (suite *TestSuiteStandard) TestOnDeleteReversesAllocation() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(100),
		Type:      models.TransactionIn,
	})

	_, err := ledger.Allocate(models.DB, transaction, []ledger.Line{
		{CategoryID: category.ID, Amount: decimal.NewFromFloat(100)},
	}, "")
	assert.Nil(suite.T(), err)
	suite.assertBalance(user.ID, category.ID, "100")

	assert.Nil(suite.T(), ledger.OnDelete(models.DB, transaction))
	suite.assertBalance(user.ID, category.ID, "0")

	var count int64
	models.DB.Model(&models.Allocation{}).Where("transaction_id = ?", transaction.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}
