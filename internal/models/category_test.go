package models_test

import (
	"github.com/stretchr/testify/assert"

	"github.com/fundward/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryNameNotUniqueForOwner() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries"})

	err := models.DB.Create(&models.Category{OwnerID: user.ID, Name: "Groceries"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryOwnParent() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries"})

	category.ParentID = &category.ID
	err := category.CheckHierarchy(models.DB)
	assert.ErrorIs(suite.T(), err, models.ErrCategoryOwnParent)
}

func (suite *TestSuiteStandard) TestCategoryCycle() {
	user := suite.createTestUser(models.User{})
	parent := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Household"})
	child := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries", ParentID: &parent.ID})

	// Re-pointing the parent below its own child closes a cycle.
	parent.ParentID = &child.ID
	err := parent.CheckHierarchy(models.DB)
	assert.ErrorIs(suite.T(), err, models.ErrCategoryCycle)
}

func (suite *TestSuiteStandard) TestCategoryResolveTopLevel() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Household"})

	parent, child, err := category.Resolve(models.DB)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), category.ID, parent.ID)
	assert.Nil(suite.T(), child)
}

func (suite *TestSuiteStandard) TestCategoryResolveSubcategory() {
	user := suite.createTestUser(models.User{})
	top := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Household"})
	sub := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries", ParentID: &top.ID})

	parent, child, err := sub.Resolve(models.DB)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), top.ID, parent.ID)
	if assert.NotNil(suite.T(), child) {
		assert.Equal(suite.T(), sub.ID, child.ID)
	}
}
