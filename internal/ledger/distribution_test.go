package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fundward/backend/internal/ledger"
	"github.com/fundward/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAllocate() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	groceries := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries", IsFundManaged: true})
	travel := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Travel", IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(4500),
		Type:      models.TransactionIn,
	})

	allocation, err := ledger.Allocate(models.DB, transaction, []ledger.Line{
		{CategoryID: groceries.ID, Amount: decimal.NewFromFloat(600)},
		{CategoryID: travel.ID, Amount: decimal.NewFromFloat(400), Note: "Summer trip"},
	}, "March salary")
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), allocation.TotalAllocatedAmount.Equal(decimal.NewFromFloat(1000)))
	assert.Len(suite.T(), allocation.Lines, 2)

	suite.assertBalance(user.ID, groceries.ID, "600")
	suite.assertBalance(user.ID, travel.ID, "400")
}

func (suite *TestSuiteStandard) TestAllocateExpense() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(50),
		Type:      models.TransactionOut,
	})

	_, err := ledger.Allocate(models.DB, transaction, []ledger.Line{
		{CategoryID: category.ID, Amount: decimal.NewFromFloat(50)},
	}, "")
	assert.ErrorIs(suite.T(), err, ledger.ErrNotIncome)
}

func (suite *TestSuiteStandard) TestDebit() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(80),
		Type:      models.TransactionOut,
	})

	record, err := ledger.Debit(models.DB, transaction, []ledger.Line{
		{CategoryID: category.ID, Amount: decimal.NewFromFloat(80)},
	}, "")
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), record.TotalDebitedAmount.Equal(decimal.NewFromFloat(80)))

	suite.assertBalance(user.ID, category.ID, "-80")
}

func (suite *TestSuiteStandard) TestDebitIncome() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(100),
		Type:      models.TransactionIn,
	})

	_, err := ledger.Debit(models.DB, transaction, []ledger.Line{
		{CategoryID: category.ID, Amount: decimal.NewFromFloat(100)},
	}, "")
	assert.ErrorIs(suite.T(), err, ledger.ErrNotExpense)
}

func (suite *TestSuiteStandard) TestOverAllocation() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(100),
		Type:      models.TransactionIn,
	})

	// 100.01 is still within the rounding tolerance, 100.02 is not.
	_, err := ledger.Allocate(models.DB, transaction, []ledger.Line{
		{CategoryID: category.ID, Amount: decimal.RequireFromString("100.02")},
	}, "")
	assert.ErrorIs(suite.T(), err, ledger.ErrOverAllocation)

	_, err = ledger.Allocate(models.DB, transaction, []ledger.Line{
		{CategoryID: category.ID, Amount: decimal.RequireFromString("100.01")},
	}, "")
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestLineValidation() {
	user := suite.createTestUser()
	other := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	unmanaged := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Unmanaged"})
	foreign := suite.createTestCategory(models.Category{OwnerID: other.ID, Name: "Foreign", IsFundManaged: true})
	managed := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Managed", IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(100),
		Type:      models.TransactionIn,
	})

	tests := []struct {
		name  string
		lines []ledger.Line
		err   error
	}{
		{"no lines", nil, ledger.ErrNoLines},
		{"zero amount", []ledger.Line{{CategoryID: managed.ID, Amount: decimal.Zero}}, ledger.ErrLineAmountNotPositive},
		{"not fund-managed", []ledger.Line{{CategoryID: unmanaged.ID, Amount: decimal.NewFromFloat(10)}}, ledger.ErrCategoryNotFundManaged},
		{"other owner", []ledger.Line{{CategoryID: foreign.ID, Amount: decimal.NewFromFloat(10)}}, ledger.ErrCrossOwnerCategory},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := ledger.Allocate(models.DB, transaction, tt.lines, "")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestAlreadyProcessed() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, IsFundManaged: true})

	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:   user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(100),
		Type:      models.TransactionIn,
	})

	lines := []ledger.Line{{CategoryID: category.ID, Amount: decimal.NewFromFloat(100)}}

	_, err := ledger.Allocate(models.DB, transaction, lines, "")
	assert.Nil(suite.T(), err)

	_, err = ledger.Allocate(models.DB, transaction, lines, "")
	assert.ErrorIs(suite.T(), err, ledger.ErrAlreadyProcessed)
}
