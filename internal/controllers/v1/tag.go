package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/models"
)

// RegisterTagRoutes registers the routes for tags with the RouterGroup
// that is passed.
func RegisterTagRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTags)
		r.POST("", CreateTag)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetTag)
		r.DELETE("/:id", DeleteTag)
	}
}

type TagEditable struct {
	OwnerID uuid.UUID `json:"ownerId" example:"c8572c6d-8919-4f4a-9087-02bc64156b29"`
	Name    string    `json:"name" binding:"required" example:"vacation"`
}

type Tag struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
}

type TagResponse struct {
	Data  *Tag    `json:"data"`
	Error *string `json:"error"`
}

type TagListResponse struct {
	Data  []Tag   `json:"data"`
	Error *string `json:"error"`
}

func newTag(t models.Tag) Tag {
	return Tag{ID: t.ID, CreatedAt: t.CreatedAt, OwnerID: t.OwnerID, Name: t.Name}
}

// @Summary		Get tags
// @Description	Returns a list of tags
// @Tags			Tags
// @Produce		json
// @Success		200		{object}	TagListResponse
// @Failure		400		{object}	TagListResponse
// @Failure		500		{object}	TagListResponse
// @Param			owner	query		string	false	"Filter by owner ID"
// @Router			/v1/tags [get]
func GetTags(c *gin.Context) {
	q := models.DB.Order("name ASC")

	if owner := c.Query("owner"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			e := httputil.ErrInvalidUUID.Error()
			c.JSON(http.StatusBadRequest, TagListResponse{Error: &e})
			return
		}

		q = q.Where("owner_id = ?", id)
	}

	var tags []models.Tag
	err := q.Find(&tags).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagListResponse{Error: &e})
		return
	}

	data := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		data = append(data, newTag(tag))
	}

	c.JSON(http.StatusOK, TagListResponse{Data: data})
}

// @Summary		Get tag
// @Description	Returns a specific tag
// @Tags			Tags
// @Produce		json
// @Success		200	{object}	TagResponse
// @Failure		400	{object}	TagResponse
// @Failure		404	{object}	TagResponse
// @Failure		500	{object}	TagResponse
// @Param			id	path		string	true	"ID of the tag"
// @Router			/v1/tags/{id} [get]
func GetTag(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagResponse{Error: &e})
		return
	}

	var tag models.Tag
	err = models.DB.First(&tag, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagResponse{Error: &e})
		return
	}

	data := newTag(tag)
	c.JSON(http.StatusOK, TagResponse{Data: &data})
}

// @Summary		Create tag
// @Description	Creates a new tag
// @Tags			Tags
// @Produce		json
// @Success		201	{object}	TagResponse
// @Failure		400	{object}	TagResponse
// @Failure		404	{object}	TagResponse
// @Failure		500	{object}	TagResponse
// @Param			tag	body		TagEditable	true	"Tag"
// @Router			/v1/tags [post]
func CreateTag(c *gin.Context) {
	var editable TagEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TagResponse{Error: &e})
		return
	}

	tag := models.Tag{OwnerID: editable.OwnerID, Name: editable.Name}
	if err := models.DB.Create(&tag).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TagResponse{Error: &e})
		return
	}

	data := newTag(tag)
	c.JSON(http.StatusCreated, TagResponse{Data: &data})
}

// @Summary		Delete tag
// @Description	Deletes a tag
// @Tags			Tags
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the tag"
// @Router			/v1/tags/{id} [delete]
func DeleteTag(c *gin.Context) {
	deleteResource[models.Tag](c)
}
