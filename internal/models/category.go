package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a category of transactions. Categories form a tree
// with a nesting depth of two in practice: a top level category and its
// subcategories.
type Category struct {
	DefaultModel
	Owner         User      `gorm:"constraint:OnDelete:CASCADE"`
	OwnerID       uuid.UUID `gorm:"uniqueIndex:category_owner_name"`
	Name          string    `gorm:"uniqueIndex:category_owner_name"`
	Note          string
	ParentID      *uuid.UUID
	Parent        *Category `gorm:"foreignKey:ParentID"`
	IsFundManaged bool
	IsBudgeted    bool
}

var (
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the owner")
	ErrCategoryOwnParent     = errors.New("a category cannot be its own parent")
	ErrCategoryCycle         = errors.New("the category hierarchy must not contain cycles")
)

// BeforeSave trims whitespace and normalizes the parent reference.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	// A pointer to the nil UUID means "no parent"
	if c.ParentID != nil && *c.ParentID == uuid.Nil {
		c.ParentID = nil
	}

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	return c.CheckHierarchy(tx)
}

// CheckHierarchy rejects self-references and walks the ancestor chain to
// reject multi-level cycles. Called on create and before every parent
// change.
func (c *Category) CheckHierarchy(tx *gorm.DB) error {
	if c.ParentID == nil {
		return nil
	}

	if *c.ParentID == c.ID {
		return ErrCategoryOwnParent
	}

	// Walk up the tree. The chain is at most a handful of levels deep, so
	// one query per level is fine.
	ancestor := *c.ParentID
	for {
		var parent Category
		err := tx.First(&parent, ancestor).Error
		if err != nil {
			return err
		}

		if parent.ParentID == nil {
			return nil
		}

		if *parent.ParentID == c.ID {
			return ErrCategoryCycle
		}

		ancestor = *parent.ParentID
	}
}

// Resolve returns the category as a (parent, child) pair. For a top level
// category the child is nil.
func (c Category) Resolve(db *gorm.DB) (parent Category, child *Category, err error) {
	if c.ParentID == nil {
		return c, nil, nil
	}

	err = db.First(&parent, *c.ParentID).Error
	if err != nil {
		return Category{}, nil, err
	}

	return parent, &c, nil
}
