package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundward/backend/internal/models"
	"gorm.io/gorm"
)

// TransactionEditable contains the fields callers can set on a
// transaction.
type TransactionEditable struct {
	OwnerID     uuid.UUID              `json:"ownerId" example:"c8572c6d-8919-4f4a-9087-02bc64156b29"`
	AccountID   uuid.UUID              `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`
	Date        time.Time              `json:"date" example:"2024-03-01T00:00:00Z"`
	Description string                 `json:"description" example:"Coffee shop"`
	Amount      decimal.Decimal        `json:"amount" example:"-12.50"`
	Type        models.TransactionType `json:"type" example:"OUT"`
	CategoryID  *uuid.UUID             `json:"categoryId"`
	TagIDs      []uuid.UUID            `json:"tagIds"`
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		OwnerID:     editable.OwnerID,
		AccountID:   editable.AccountID,
		Date:        editable.Date,
		Description: editable.Description,
		Amount:      editable.Amount,
		Type:        editable.Type,
		CategoryID:  editable.CategoryID,
	}
}

// tags loads the referenced tags so gorm can maintain the join table.
func (editable TransactionEditable) tags(db *gorm.DB) ([]models.Tag, error) {
	if len(editable.TagIDs) == 0 {
		return nil, nil
	}

	var tags []models.Tag
	err := db.Where("id IN ?", editable.TagIDs).Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}

type Transaction struct {
	ID          uuid.UUID              `json:"id" example:"d1b9d27e-0660-4018-9a3d-1c46bbbe21a0"`
	CreatedAt   time.Time              `json:"createdAt" example:"2024-03-01T07:23:27Z"`
	UpdatedAt   time.Time              `json:"updatedAt" example:"2024-03-01T07:23:27Z"`
	OwnerID     uuid.UUID              `json:"ownerId"`
	AccountID   uuid.UUID              `json:"accountId"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        models.TransactionType `json:"type"`
	CategoryID  *uuid.UUID             `json:"categoryId"`
	TagIDs      []uuid.UUID            `json:"tagIds"`
}

func newTransaction(t models.Transaction) Transaction {
	tagIDs := make([]uuid.UUID, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	return Transaction{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		OwnerID:     t.OwnerID,
		AccountID:   t.AccountID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		CategoryID:  t.CategoryID,
		TagIDs:      tagIDs,
	}
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`
	Error *string      `json:"error"`
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`
	Error *string       `json:"error"`
}
