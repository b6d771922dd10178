package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategorizationRule is a learned association between a transaction
// description and a category plus tags. Rules are upserted every time a
// categorized transaction is committed and are used to suggest categories
// for new descriptions.
type CategorizationRule struct {
	DefaultModel
	Owner               User      `gorm:"constraint:OnDelete:CASCADE"`
	OwnerID             uuid.UUID `gorm:"uniqueIndex:rule_owner_pattern"`
	DescriptionPattern  string    `gorm:"uniqueIndex:rule_owner_pattern"`
	SuggestedCategoryID *uuid.UUID
	SuggestedCategory   *Category `gorm:"constraint:OnDelete:SET NULL"`
	SuggestedTags       []Tag     `gorm:"many2many:categorization_rule_tags;constraint:OnDelete:CASCADE"`
	HitCount            int
	LastAppliedAt       time.Time
}

var ErrRulePatternNotUnique = errors.New("there already is a rule for this description pattern")

func (r *CategorizationRule) BeforeSave(_ *gorm.DB) error {
	r.DescriptionPattern = strings.TrimSpace(r.DescriptionPattern)

	if r.LastAppliedAt.IsZero() {
		r.LastAppliedAt = time.Now().In(time.UTC)
	}

	return nil
}
