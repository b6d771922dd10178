package ledger_test

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/fundward/backend/internal/ledger"
	"github.com/fundward/backend/internal/models"
)

func (suite *TestSuiteStandard) TestSplit() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	groceries := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries", IsFundManaged: true})
	household := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Household", IsFundManaged: true})

	original := suite.createTestTransaction(models.Transaction{
		OwnerID:     user.ID,
		AccountID:   account.ID,
		Description: "Supermarket",
		Amount:      decimal.NewFromFloat(90),
		Type:        models.TransactionOut,
	})

	created, err := ledger.Split(models.DB, original, []ledger.SplitLine{
		{Description: "Food", Amount: decimal.NewFromFloat(60), CategoryID: &groceries.ID},
		{Description: "Cleaning supplies", Amount: decimal.NewFromFloat(30), CategoryID: &household.ID},
	})
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), created, 2)

	// The replacements go through the regular creation path.
	assert.Equal(suite.T(), models.TransactionOut, created[0].Type)
	assert.True(suite.T(), created[0].Amount.Equal(decimal.NewFromFloat(-60)), "amount is %s", created[0].Amount)
	assert.Equal(suite.T(), original.Date, created[0].Date)

	suite.assertBalance(user.ID, groceries.ID, "-60")
	suite.assertBalance(user.ID, household.ID, "-30")

	// The original is gone.
	err = models.DB.First(&models.Transaction{}, original.ID).Error
	assert.True(suite.T(), errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound))
}

func (suite *TestSuiteStandard) TestSplitReversesOriginalEffect() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	groceries := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries", IsFundManaged: true})
	household := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Household", IsFundManaged: true})

	original := suite.createTestTransaction(models.Transaction{
		OwnerID:     user.ID,
		AccountID:   account.ID,
		Description: "Supermarket",
		Amount:      decimal.NewFromFloat(90),
		Type:        models.TransactionOut,
		CategoryID:  &groceries.ID,
	})

	assert.Nil(suite.T(), ledger.OnCreate(models.DB, original))
	suite.assertBalance(user.ID, groceries.ID, "-90")

	_, err := ledger.Split(models.DB, original, []ledger.SplitLine{
		{Description: "Food", Amount: decimal.NewFromFloat(60), CategoryID: &groceries.ID},
		{Description: "Cleaning supplies", Amount: decimal.NewFromFloat(30), CategoryID: &household.ID},
	})
	assert.Nil(suite.T(), err)

	suite.assertBalance(user.ID, groceries.ID, "-60")
	suite.assertBalance(user.ID, household.ID, "-30")
}

func (suite *TestSuiteStandard) TestSplitSumMismatch() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})

	original := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(90),
		Type:      models.TransactionOut,
	})

	_, err := ledger.Split(models.DB, original, []ledger.SplitLine{
		{Description: "Food", Amount: decimal.NewFromFloat(60)},
		{Description: "Cleaning supplies", Amount: decimal.NewFromFloat(40)},
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrSplitSumMismatch)

	// The original is untouched.
	err = models.DB.First(&models.Transaction{}, original.ID).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestSplitTooFewLines() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})

	original := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(90),
		Type:      models.TransactionOut,
	})

	_, err := ledger.Split(models.DB, original, []ledger.SplitLine{
		{Description: "Food", Amount: decimal.NewFromFloat(90)},
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrSplitTooFewLines)
}

func (suite *TestSuiteStandard) TestSplitTransfer() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})

	original := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(-90),
		Type:      models.TransactionTransfer,
	})

	_, err := ledger.Split(models.DB, original, []ledger.SplitLine{
		{Description: "Half", Amount: decimal.NewFromFloat(45)},
		{Description: "Other half", Amount: decimal.NewFromFloat(45)},
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrSplitTransfer)
}
