package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/models"
)

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

type CategoryEditable struct {
	OwnerID       uuid.UUID  `json:"ownerId" example:"c8572c6d-8919-4f4a-9087-02bc64156b29"`
	Name          string     `json:"name" binding:"required" example:"Groceries"`
	Note          string     `json:"note"`
	ParentID      *uuid.UUID `json:"parentId"`
	IsFundManaged bool       `json:"isFundManaged" example:"true"`
	IsBudgeted    bool       `json:"isBudgeted"`
}

type CategoryUpdate struct {
	Name          *string    `json:"name"`
	Note          *string    `json:"note"`
	ParentID      *uuid.UUID `json:"parentId"`
	IsFundManaged *bool      `json:"isFundManaged"`
	IsBudgeted    *bool      `json:"isBudgeted"`
}

type Category struct {
	ID            uuid.UUID  `json:"id"`
	CreatedAt     time.Time  `json:"createdAt"`
	OwnerID       uuid.UUID  `json:"ownerId"`
	Name          string     `json:"name"`
	Note          string     `json:"note"`
	ParentID      *uuid.UUID `json:"parentId"`
	IsFundManaged bool       `json:"isFundManaged"`
	IsBudgeted    bool       `json:"isBudgeted"`
}

type CategoryResponse struct {
	Data  *Category `json:"data"`
	Error *string   `json:"error"`
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`
	Error *string    `json:"error"`
}

func newCategory(category models.Category) Category {
	return Category{
		ID:            category.ID,
		CreatedAt:     category.CreatedAt,
		OwnerID:       category.OwnerID,
		Name:          category.Name,
		Note:          category.Note,
		ParentID:      category.ParentID,
		IsFundManaged: category.IsFundManaged,
		IsBudgeted:    category.IsBudgeted,
	}
}

// @Summary		Get categories
// @Description	Returns a list of categories
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	CategoryListResponse
// @Failure		400		{object}	CategoryListResponse
// @Failure		500		{object}	CategoryListResponse
// @Param			owner	query		string	false	"Filter by owner ID"
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	q := models.DB.Order("name ASC")

	if owner := c.Query("owner"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			e := httputil.ErrInvalidUUID.Error()
			c.JSON(http.StatusBadRequest, CategoryListResponse{Error: &e})
			return
		}

		q = q.Where("owner_id = ?", id)
	}

	var categories []models.Category
	err := q.Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		404	{object}	CategoryResponse
// @Failure		500	{object}	CategoryResponse
// @Param			id	path		string	true	"ID of the category"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var category models.Category
	err = models.DB.First(&category, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	data := newCategory(category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	category := models.Category{
		OwnerID:       editable.OwnerID,
		Name:          editable.Name,
		Note:          editable.Note,
		ParentID:      editable.ParentID,
		IsFundManaged: editable.IsFundManaged,
		IsBudgeted:    editable.IsBudgeted,
	}

	if err := models.DB.Create(&category).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	data := newCategory(category)
	c.JSON(http.StatusCreated, CategoryResponse{Data: &data})
}

// @Summary		Update category
// @Description	Updates an existing category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			id			path		string			true	"ID of the category"
// @Param			category	body		CategoryUpdate	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var category models.Category
	err = models.DB.First(&category, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var update CategoryUpdate
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	if update.Name != nil {
		category.Name = *update.Name
	}
	if update.Note != nil {
		category.Note = *update.Note
	}
	if update.ParentID != nil {
		category.ParentID = update.ParentID
	}
	if update.IsFundManaged != nil {
		category.IsFundManaged = *update.IsFundManaged
	}
	if update.IsBudgeted != nil {
		category.IsBudgeted = *update.IsBudgeted
	}

	if err := category.CheckHierarchy(models.DB); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	if err := models.DB.Save(&category).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	data := newCategory(category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Delete category
// @Description	Deletes a category
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the category"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	deleteResource[models.Category](c)
}
