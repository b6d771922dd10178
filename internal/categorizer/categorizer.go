// Package categorizer learns categorization rules from committed
// transactions and suggests categories and tags for new descriptions.
package categorizer

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"

	"github.com/fundward/backend/internal/models"
)

// matchThreshold is the minimum similarity score for a fuzzy match.
// Scores below it mean "no suggestion".
const matchThreshold = 85

// SimilarityFunc scores how similar two strings are on a 0 to 100 scale.
type SimilarityFunc func(a, b string) int

// Engine suggests categories for transaction descriptions. The zero value
// uses the default similarity scorer.
type Engine struct {
	// Similarity replaces the default scorer, mainly for tests
	Similarity SimilarityFunc
}

// Suggestion is what the engine proposes for a description. The zero
// value means "no suggestion".
type Suggestion struct {
	CategoryID    uuid.UUID
	SubcategoryID *uuid.UUID
	TagIDs        []uuid.UUID
}

// Learn upserts the rule for the transaction's description. Uncategorized
// transactions and transactions without a description do not produce
// rules.
func Learn(db *gorm.DB, t models.Transaction) error {
	description := strings.TrimSpace(t.Description)
	if description == "" || t.CategoryID == nil {
		return nil
	}

	var rule models.CategorizationRule
	err := db.First(&rule, "owner_id = ? AND description_pattern = ?", t.OwnerID, description).Error

	if err != nil {
		if !notFound(err) {
			return err
		}

		rule = models.CategorizationRule{
			OwnerID:             t.OwnerID,
			DescriptionPattern:  description,
			SuggestedCategoryID: t.CategoryID,
			HitCount:            1,
			LastAppliedAt:       time.Now().In(time.UTC),
		}

		if err := db.Create(&rule).Error; err != nil {
			return err
		}

		return db.Model(&rule).Association("SuggestedTags").Replace(t.Tags)
	}

	rule.SuggestedCategoryID = t.CategoryID
	rule.HitCount++
	rule.LastAppliedAt = time.Now().In(time.UTC)

	if err := db.Save(&rule).Error; err != nil {
		return err
	}

	if len(t.Tags) > 0 {
		return db.Model(&rule).Association("SuggestedTags").Replace(t.Tags)
	}

	return nil
}

// Suggest proposes a category and tags for the description. Matching runs
// in three passes: exact pattern match, glob patterns, then fuzzy
// similarity against all patterns. A successful suggestion reinforces the
// winning rule.
func (e Engine) Suggest(db *gorm.DB, ownerID uuid.UUID, description string) (Suggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Suggestion{}, nil
	}

	var rules []models.CategorizationRule
	err := db.Preload("SuggestedTags").
		Where("owner_id = ? AND suggested_category_id IS NOT NULL", ownerID).
		Find(&rules).Error
	if err != nil {
		return Suggestion{}, err
	}

	rule := match(rules, description, e.similarity())
	if rule == nil {
		return Suggestion{}, nil
	}

	if err := reinforce(db, rule); err != nil {
		return Suggestion{}, err
	}

	return resolve(db, *rule)
}

func (e Engine) similarity() SimilarityFunc {
	if e.Similarity != nil {
		return e.Similarity
	}
	return fuzzy.Ratio
}

func match(rules []models.CategorizationRule, description string, similarity SimilarityFunc) *models.CategorizationRule {
	// Stable priority order so that ties are deterministic
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].HitCount != rules[j].HitCount {
			return rules[i].HitCount > rules[j].HitCount
		}
		if !rules[i].LastAppliedAt.Equal(rules[j].LastAppliedAt) {
			return rules[i].LastAppliedAt.After(rules[j].LastAppliedAt)
		}
		return rules[i].DescriptionPattern < rules[j].DescriptionPattern
	})

	for i := range rules {
		if rules[i].DescriptionPattern == description {
			return &rules[i]
		}
	}

	for i := range rules {
		if strings.Contains(rules[i].DescriptionPattern, "*") && glob.Glob(rules[i].DescriptionPattern, description) {
			return &rules[i]
		}
	}

	var best *models.CategorizationRule
	bestScore := 0

	for i := range rules {
		score := similarity(rules[i].DescriptionPattern, description)
		if score >= matchThreshold && score > bestScore {
			best = &rules[i]
			bestScore = score
		}
	}

	return best
}

// reinforce counts an accepted suggestion on its rule.
func reinforce(db *gorm.DB, rule *models.CategorizationRule) error {
	rule.HitCount++
	rule.LastAppliedAt = time.Now().In(time.UTC)

	return db.Model(rule).Updates(map[string]interface{}{
		"hit_count":       rule.HitCount,
		"last_applied_at": rule.LastAppliedAt,
	}).Error
}

// resolve expands the rule's leaf category into a (category,
// subcategory) pair and collects the suggested tag IDs.
func resolve(db *gorm.DB, rule models.CategorizationRule) (Suggestion, error) {
	var category models.Category
	if err := db.First(&category, *rule.SuggestedCategoryID).Error; err != nil {
		return Suggestion{}, err
	}

	parent, child, err := category.Resolve(db)
	if err != nil {
		return Suggestion{}, err
	}

	suggestion := Suggestion{CategoryID: parent.ID}
	if child != nil {
		id := child.ID
		suggestion.SubcategoryID = &id
	}

	for _, tag := range rule.SuggestedTags {
		suggestion.TagIDs = append(suggestion.TagIDs, tag.ID)
	}

	return suggestion, nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound)
}
