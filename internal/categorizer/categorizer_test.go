package categorizer_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fundward/backend/internal/categorizer"
	"github.com/fundward/backend/internal/models"
)

func (suite *TestSuiteStandard) TestLearnCreatesRule() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	category := suite.createTestCategory(models.Category{OwnerID: user.ID})
	tag := suite.createTestTag(models.Tag{OwnerID: user.ID})

	transaction := models.Transaction{
		OwnerID:     user.ID,
		AccountID:   account.ID,
		Description: "Coffee shop",
		Amount:      decimal.NewFromFloat(12.50),
		CategoryID:  &category.ID,
		Tags:        []models.Tag{tag},
	}
	assert.Nil(suite.T(), models.DB.Create(&transaction).Error)

	assert.Nil(suite.T(), categorizer.Learn(models.DB, transaction))

	var rule models.CategorizationRule
	err := models.DB.Preload("SuggestedTags").
		First(&rule, "owner_id = ? AND description_pattern = ?", user.ID, "Coffee shop").Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), category.ID, *rule.SuggestedCategoryID)
	assert.Equal(suite.T(), 1, rule.HitCount)
	if assert.Len(suite.T(), rule.SuggestedTags, 1) {
		assert.Equal(suite.T(), tag.ID, rule.SuggestedTags[0].ID)
	}
}

func (suite *TestSuiteStandard) TestLearnUpdatesRule() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})
	first := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "First"})
	second := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Second"})

	transaction := models.Transaction{
		OwnerID:     user.ID,
		AccountID:   account.ID,
		Description: "Coffee shop",
		Amount:      decimal.NewFromFloat(12.50),
		CategoryID:  &first.ID,
	}
	assert.Nil(suite.T(), models.DB.Create(&transaction).Error)
	assert.Nil(suite.T(), categorizer.Learn(models.DB, transaction))

	// Re-categorizing the same description moves the rule along.
	transaction.CategoryID = &second.ID
	assert.Nil(suite.T(), categorizer.Learn(models.DB, transaction))

	var rule models.CategorizationRule
	err := models.DB.First(&rule, "owner_id = ? AND description_pattern = ?", user.ID, "Coffee shop").Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), second.ID, *rule.SuggestedCategoryID)
	assert.Equal(suite.T(), 2, rule.HitCount)
}

func (suite *TestSuiteStandard) TestLearnSkipsUncategorized() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{OwnerID: user.ID})

	transaction := models.Transaction{
		OwnerID:     user.ID,
		AccountID:   account.ID,
		Description: "Coffee shop",
		Amount:      decimal.NewFromFloat(12.50),
	}
	assert.Nil(suite.T(), models.DB.Create(&transaction).Error)
	assert.Nil(suite.T(), categorizer.Learn(models.DB, transaction))

	var count int64
	models.DB.Model(&models.CategorizationRule{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestSuggestExact() {
	user := suite.createTestUser()
	category := suite.createTestCategory(models.Category{OwnerID: user.ID})

	suite.createTestRule(models.CategorizationRule{
		OwnerID:             user.ID,
		DescriptionPattern:  "Coffee shop",
		SuggestedCategoryID: &category.ID,
	})

	suggestion, err := categorizer.Engine{}.Suggest(models.DB, user.ID, "Coffee shop")
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), category.ID, suggestion.CategoryID)
	assert.Nil(suite.T(), suggestion.SubcategoryID)
}

func (suite *TestSuiteStandard) TestSuggestGlob() {
	user := suite.createTestUser()
	category := suite.createTestCategory(models.Category{OwnerID: user.ID})

	suite.createTestRule(models.CategorizationRule{
		OwnerID:             user.ID,
		DescriptionPattern:  "TWINT *",
		SuggestedCategoryID: &category.ID,
	})

	suggestion, err := categorizer.Engine{}.Suggest(models.DB, user.ID, "TWINT Alice")
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), category.ID, suggestion.CategoryID)
}

func (suite *TestSuiteStandard) TestSuggestFuzzyThreshold() {
	user := suite.createTestUser()
	category := suite.createTestCategory(models.Category{OwnerID: user.ID})

	suite.createTestRule(models.CategorizationRule{
		OwnerID:             user.ID,
		DescriptionPattern:  "Coffee shop",
		SuggestedCategoryID: &category.ID,
	})

	// A scorer pinned just above the threshold matches, one just below
	// it does not.
	engine := categorizer.Engine{Similarity: func(a, b string) int { return 85 }}
	suggestion, err := engine.Suggest(models.DB, user.ID, "Coffee shpo")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), category.ID, suggestion.CategoryID)

	engine = categorizer.Engine{Similarity: func(a, b string) int { return 84 }}
	suggestion, err = engine.Suggest(models.DB, user.ID, "Coffee shpo")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), categorizer.Suggestion{}, suggestion)
}

func (suite *TestSuiteStandard) TestSuggestTieBreak() {
	user := suite.createTestUser()
	weak := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Weak"})
	strong := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Strong"})

	suite.createTestRule(models.CategorizationRule{
		OwnerID:             user.ID,
		DescriptionPattern:  "Coffee corner",
		SuggestedCategoryID: &weak.ID,
		HitCount:            1,
		LastAppliedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestRule(models.CategorizationRule{
		OwnerID:             user.ID,
		DescriptionPattern:  "Coffee palace",
		SuggestedCategoryID: &strong.ID,
		HitCount:            5,
		LastAppliedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	// Both rules score the same, the more often applied one wins.
	engine := categorizer.Engine{Similarity: func(a, b string) int { return 90 }}
	suggestion, err := engine.Suggest(models.DB, user.ID, "Coffee place")
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), strong.ID, suggestion.CategoryID)
}

func (suite *TestSuiteStandard) TestSuggestReinforces() {
	user := suite.createTestUser()
	category := suite.createTestCategory(models.Category{OwnerID: user.ID})

	rule := suite.createTestRule(models.CategorizationRule{
		OwnerID:             user.ID,
		DescriptionPattern:  "Coffee shop",
		SuggestedCategoryID: &category.ID,
		HitCount:            3,
	})

	_, err := categorizer.Engine{}.Suggest(models.DB, user.ID, "Coffee shop")
	assert.Nil(suite.T(), err)

	var reloaded models.CategorizationRule
	assert.Nil(suite.T(), models.DB.First(&reloaded, rule.ID).Error)
	assert.Equal(suite.T(), 4, reloaded.HitCount)
}

func (suite *TestSuiteStandard) TestSuggestResolvesSubcategory() {
	user := suite.createTestUser()
	parent := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Household"})
	sub := suite.createTestCategory(models.Category{OwnerID: user.ID, Name: "Groceries", ParentID: &parent.ID})
	tag := suite.createTestTag(models.Tag{OwnerID: user.ID})

	suite.createTestRule(models.CategorizationRule{
		OwnerID:             user.ID,
		DescriptionPattern:  "Supermarket",
		SuggestedCategoryID: &sub.ID,
		SuggestedTags:       []models.Tag{tag},
	})

	suggestion, err := categorizer.Engine{}.Suggest(models.DB, user.ID, "Supermarket")
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), parent.ID, suggestion.CategoryID)
	if assert.NotNil(suite.T(), suggestion.SubcategoryID) {
		assert.Equal(suite.T(), sub.ID, *suggestion.SubcategoryID)
	}
	if assert.Len(suite.T(), suggestion.TagIDs, 1) {
		assert.Equal(suite.T(), tag.ID, suggestion.TagIDs[0])
	}
}

func (suite *TestSuiteStandard) TestSuggestNoMatch() {
	user := suite.createTestUser()

	suggestion, err := categorizer.Engine{}.Suggest(models.DB, user.ID, "Something new")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), categorizer.Suggestion{}, suggestion)
}

func (suite *TestSuiteStandard) TestSuggestOwnerScoped() {
	user := suite.createTestUser()
	other := suite.createTestUser()
	category := suite.createTestCategory(models.Category{OwnerID: other.ID})

	suite.createTestRule(models.CategorizationRule{
		OwnerID:             other.ID,
		DescriptionPattern:  "Coffee shop",
		SuggestedCategoryID: &category.ID,
	})

	suggestion, err := categorizer.Engine{}.Suggest(models.DB, user.ID, "Coffee shop")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), categorizer.Suggestion{}, suggestion)
}
