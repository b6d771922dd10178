package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a label that can be attached to transactions for
// classification across categories.
type Tag struct {
	DefaultModel
	Owner   User      `gorm:"constraint:OnDelete:CASCADE"`
	OwnerID uuid.UUID `gorm:"uniqueIndex:tag_owner_name"`
	Name    string    `gorm:"uniqueIndex:tag_owner_name"`
}

var ErrTagNameNotUnique = errors.New("the tag name must be unique for the owner")

func (t *Tag) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	return nil
}
