package models_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fundward/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAccountDefaults() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{OwnerID: user.ID, Name: "Checking"})

	assert.Equal(suite.T(), "CHF", account.Currency)
	assert.Equal(suite.T(), models.AccountKindIndividual, account.Kind)
}

func (suite *TestSuiteStandard) TestAccountCurrencyNormalized() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{OwnerID: user.ID, Name: "Travel", Currency: " eur "})

	assert.Equal(suite.T(), "EUR", account.Currency)
}

func (suite *TestSuiteStandard) TestAccountKindInvalid() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Account{OwnerID: user.ID, Name: "Mattress", Kind: "MATTRESS"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountKindInvalid)
}

func (suite *TestSuiteStandard) TestAccountNameNotUniqueForOwner() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestAccount(models.Account{OwnerID: user.ID, Name: "Checking"})

	err := models.DB.Create(&models.Account{OwnerID: user.ID, Name: "Checking"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestAccountSameNameDifferentOwner() {
	first := suite.createTestUser(models.User{})
	second := suite.createTestUser(models.User{})

	_ = suite.createTestAccount(models.Account{OwnerID: first.ID, Name: "Checking"})
	_ = suite.createTestAccount(models.Account{OwnerID: second.ID, Name: "Checking"})
}

func (suite *TestSuiteStandard) TestAccountNoOwner() {
	err := models.DB.Create(&models.Account{OwnerID: uuid.New(), Name: "Orphan"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
